package program

import (
	"time"

	"github.com/trezcool/klabu/core"
)

// Weekday is one of the backend's 7 symbolic day codes.
type Weekday string

const (
	Sunday    Weekday = "SUN"
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
)

// weekdayOf maps time.Weekday (Sunday = 0) onto day codes. The same mapping
// backs both the single-day and the monthly views; keep it that way.
var weekdayOf = map[time.Weekday]Weekday{
	time.Sunday:    Sunday,
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
}

// WeekdayOf returns the day code for a calendar date.
func WeekdayOf(t time.Time) Weekday { return weekdayOf[t.Weekday()] }

// Valid reports whether d is one of the 7 known day codes.
func (d Weekday) Valid() bool {
	switch d {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	}
	return false
}

// ScheduleEntry is one weekly recurring slot; not a single event.
type ScheduleEntry struct {
	DayOfWeek Weekday `json:"dayOfWeek" validate:"required,weekday"`
	StartTime string  `json:"startTime" validate:"required,hhmm"`
	EndTime   string  `json:"endTime" validate:"required,hhmm"`
}

// Program is a catalog entry. Capacity and CurrentCount are authoritative on
// the backend only; treat CurrentCount as possibly stale everywhere.
type Program struct {
	ID           int             `json:"classId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TeacherName  string          `json:"teacherName"`
	Location     string          `json:"classLocation"`
	Capacity     int             `json:"capacity"`
	CurrentCount int             `json:"currentCount"`
	Schedules    []ScheduleEntry `json:"schedules"`
}

// IsFull reports whether the program has no seats left, based on the
// last-known counts.
func (p Program) IsFull() bool { return p.CurrentCount >= p.Capacity }

// SeatsLeft returns the remaining capacity based on the last-known counts.
func (p Program) SeatsLeft() int {
	if left := p.Capacity - p.CurrentCount; left > 0 {
		return left
	}
	return 0
}

// RosterEntry is one student on a program's roster.
type RosterEntry struct {
	StudentID     int    `json:"studentId"`
	Name          string `json:"name"`
	Grade         int    `json:"grade"`
	ClassNumber   int    `json:"classNumber"`
	StudentNumber int    `json:"studentNumber"`
}

// NewProgram contains information needed to create a new Program.
type NewProgram struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Location    string          `json:"classLocation" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	Schedules   []ScheduleEntry `json:"schedules" validate:"required,min=1,dive"`
}

func (np *NewProgram) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.Location = core.CleanString(np.Location)
	return core.Validate.Struct(np)
}

// UpdateProgram defines what information may be provided to modify an existing Program.
type UpdateProgram struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Location    string          `json:"classLocation" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	Schedules   []ScheduleEntry `json:"schedules" validate:"required,min=1,dive"`
}

func (up *UpdateProgram) Validate() error {
	up.Title = core.CleanString(up.Title)
	up.Description = core.CleanString(up.Description)
	up.Location = core.CleanString(up.Location)
	return core.Validate.Struct(up)
}

type QueryFilter struct {
	Search string
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Search == "" }

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match does a case-insensitive substring match on Title and TeacherName.
// An empty query matches everything.
func (qf QueryFilter) Match(p Program) bool {
	if qf.Search == "" {
		return true
	}
	return core.ContainsFold(p.Title, qf.Search) || core.ContainsFold(p.TeacherName, qf.Search)
}
