package stats

import "github.com/trezcool/klabu/core"

// Student is a directory entry from the admin user listing.
type Student struct {
	ID          int    `json:"studentId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Grade       int    `json:"grade"`
	ClassNo     int    `json:"classNo"`
	ClassNumber int    `json:"classNumber"`
	PhoneNumber string `json:"phoneNumber"`
}

// Teacher is a directory entry from the admin user listing.
type Teacher struct {
	ID          int    `json:"teacherId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type QueryFilter struct {
	Search string
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Search == "" }

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// MatchStudent matches the query against name and email; empty matches all.
func (qf QueryFilter) MatchStudent(s Student) bool {
	if qf.Search == "" {
		return true
	}
	return core.ContainsFold(s.Name, qf.Search) || core.ContainsFold(s.Email, qf.Search)
}

// MatchTeacher matches the query against name and email; empty matches all.
func (qf QueryFilter) MatchTeacher(t Teacher) bool {
	if qf.Search == "" {
		return true
	}
	return core.ContainsFold(t.Name, qf.Search) || core.ContainsFold(t.Email, qf.Search)
}
