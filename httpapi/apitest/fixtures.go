package apitest

import (
	"github.com/trezcool/klabu/core/notice"
	"github.com/trezcool/klabu/core/program"
)

// Test fixture helpers. All of them are safe to call before or between
// requests.

// AddAccount registers an account and returns its id.
func (s *Server) AddAccount(acc Account) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAccountID++
	acc.ID = s.nextAccountID
	s.accounts[acc.Email] = &acc
	return acc.ID
}

// AddStudent registers a student account and returns its id.
func (s *Server) AddStudent(name, email, password string) int {
	return s.AddAccount(Account{Role: "student", Name: name, Email: email, Password: password})
}

// AddTeacher registers a teacher account and returns its id.
func (s *Server) AddTeacher(name, email, password string) int {
	return s.AddAccount(Account{Role: "teacher", Name: name, Email: email, Password: password})
}

// AddAdmin registers an admin account and returns its id.
func (s *Server) AddAdmin(name, email, password string) int {
	return s.AddAccount(Account{Role: "admin", Name: name, Email: email, Password: password})
}

// AddProgram seeds a program and returns its assigned id. CurrentCount is
// honored as-is so tests can stage nearly-full classes.
func (s *Server) AddProgram(p program.Program) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClassID++
	p.ID = s.nextClassID
	s.programs = append(s.programs, &p)
	if s.enrollments[p.ID] == nil {
		s.enrollments[p.ID] = make(map[string]struct{})
	}
	return p.ID
}

// SetEnrolled marks a student as already enrolled without touching counts.
func (s *Server) SetEnrolled(classID int, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enrollments[classID] == nil {
		s.enrollments[classID] = make(map[string]struct{})
	}
	s.enrollments[classID][email] = struct{}{}
}

// AddNotice seeds a notice and returns its assigned id.
func (s *Server) AddNotice(n notice.Notice) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNoticeID++
	n.ID = s.nextNoticeID
	s.notices = append(s.notices, &n)
	return n.ID
}
