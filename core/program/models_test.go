package program

import (
	"testing"
)

func validNewProgram() NewProgram {
	return NewProgram{
		Title:       "Coding",
		Description: "Intro to programming",
		Location:    "Lab 2",
		Capacity:    20,
		Schedules: []ScheduleEntry{
			{DayOfWeek: Monday, StartTime: "15:00", EndTime: "16:30"},
		},
	}
}

func TestNewProgramValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NewProgram)
		wantErr bool
	}{
		{name: "valid", mutate: func(np *NewProgram) {}},
		{name: "whitespace title is trimmed", mutate: func(np *NewProgram) { np.Title = "  Coding  " }},
		{name: "missing title", mutate: func(np *NewProgram) { np.Title = "" }, wantErr: true},
		{name: "missing description", mutate: func(np *NewProgram) { np.Description = "" }, wantErr: true},
		{name: "missing location", mutate: func(np *NewProgram) { np.Location = "" }, wantErr: true},
		{name: "zero capacity", mutate: func(np *NewProgram) { np.Capacity = 0 }, wantErr: true},
		{name: "negative capacity", mutate: func(np *NewProgram) { np.Capacity = -3 }, wantErr: true},
		{name: "no schedules", mutate: func(np *NewProgram) { np.Schedules = nil }, wantErr: true},
		{
			name:    "bad day code",
			mutate:  func(np *NewProgram) { np.Schedules[0].DayOfWeek = "MONDAY" },
			wantErr: true,
		},
		{
			name:    "bad start time",
			mutate:  func(np *NewProgram) { np.Schedules[0].StartTime = "25:00" },
			wantErr: true,
		},
		{
			name:    "bad end time format",
			mutate:  func(np *NewProgram) { np.Schedules[0].EndTime = "4pm" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			np := validNewProgram()
			tt.mutate(&np)
			err := np.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() error = nil; want a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}

	t.Run("fields come back clean", func(t *testing.T) {
		np := validNewProgram()
		np.Title = "  Coding "
		if err := np.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if np.Title != "Coding" {
			t.Errorf("Title = %q; want %q", np.Title, "Coding")
		}
	})
}

func TestProgramCapacity(t *testing.T) {
	tests := []struct {
		name      string
		program   Program
		wantFull  bool
		wantSeats int
	}{
		{"empty", Program{Capacity: 20, CurrentCount: 0}, false, 20},
		{"one seat left", Program{Capacity: 20, CurrentCount: 19}, false, 1},
		{"full", Program{Capacity: 20, CurrentCount: 20}, true, 0},
		{"over capacity", Program{Capacity: 20, CurrentCount: 25}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.program.IsFull(); got != tt.wantFull {
				t.Errorf("IsFull() = %v; want %v", got, tt.wantFull)
			}
			if got := tt.program.SeatsLeft(); got != tt.wantSeats {
				t.Errorf("SeatsLeft() = %d; want %d", got, tt.wantSeats)
			}
		})
	}
}

func TestQueryFilterMatch(t *testing.T) {
	coding := Program{Title: "Creative Coding", TeacherName: "Park Jiho"}

	tests := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"coding", true},
		{"CREATIVE", true},
		{"jiho", true},
		{"chess", false},
	}
	for _, tt := range tests {
		qf := QueryFilter{Search: tt.search}
		if got := qf.Match(coding); got != tt.want {
			t.Errorf("Match(%q) = %v; want %v", tt.search, got, tt.want)
		}
	}
}
