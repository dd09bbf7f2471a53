package program

import "time"

// Occurrence is one concrete calendar-dated instance of a weekly recurring
// schedule entry. Recomputed on each view; never persisted.
type Occurrence struct {
	Date      time.Time // midnight, location of the input range
	ProgramID int
	Title     string
	Location  string
	StartTime string
	EndTime   string
}

// Project maps the weekly schedules of the given programs onto every date in
// [from, to] (inclusive) and returns the dated occurrences, ordered by date,
// program and start time as given.
//
// Entries whose day code is not one of the 7 known symbols are skipped and
// returned separately so the caller can log them; they are never fatal.
// Entries that are exact duplicates (same program, day, start and end) emit a
// single occurrence. The function is pure: same inputs, same output.
func Project(programs []Program, from, to time.Time) ([]Occurrence, []ScheduleEntry) {
	var occurrences []Occurrence
	var skipped []ScheduleEntry

	seenSkipped := make(map[ScheduleEntry]struct{})
	for _, p := range programs {
		for _, s := range p.Schedules {
			if !s.DayOfWeek.Valid() {
				if _, ok := seenSkipped[s]; !ok {
					seenSkipped[s] = struct{}{}
					skipped = append(skipped, s)
				}
			}
		}
	}

	from = truncateDay(from)
	to = truncateDay(to)
	type slot struct {
		programID  int
		day        Weekday
		start, end string
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := WeekdayOf(d)
		seen := make(map[slot]struct{})
		for _, p := range programs {
			for _, s := range p.Schedules {
				if s.DayOfWeek != day {
					continue
				}
				key := slot{p.ID, s.DayOfWeek, s.StartTime, s.EndTime}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				occurrences = append(occurrences, Occurrence{
					Date:      d,
					ProgramID: p.ID,
					Title:     p.Title,
					Location:  p.Location,
					StartTime: s.StartTime,
					EndTime:   s.EndTime,
				})
			}
		}
	}
	return occurrences, skipped
}

// ProjectDay is Project for a single date.
func ProjectDay(programs []Program, day time.Time) ([]Occurrence, []ScheduleEntry) {
	return Project(programs, day, day)
}

// MonthRange returns the first and last dates of t's month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
