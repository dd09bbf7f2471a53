package program

import (
	"context"
	"time"

	"github.com/trezcool/klabu/core"
)

type (
	// Repository is the backend's program surface. Implementations live in
	// httpapi; tests provide their own fakes.
	Repository interface {
		QueryAllPrograms(ctx context.Context) ([]Program, error)
		QueryMyPrograms(ctx context.Context) ([]Program, error)
		CreateProgram(ctx context.Context, np NewProgram) (Program, error)
		UpdateProgram(ctx context.Context, id int, up UpdateProgram) (Program, error)
		DeleteProgram(ctx context.Context, id int) error
		// QueryProgramRoster is fetched lazily, only when a program's detail
		// view is opened; never eagerly for the whole catalog.
		QueryProgramRoster(ctx context.Context, id int) ([]RosterEntry, error)
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Catalog returns the full program catalog.
func (svc *Service) Catalog(ctx context.Context) ([]Program, error) {
	return svc.repo.QueryAllPrograms(ctx)
}

// Mine returns the programs owned by the authenticated teacher.
func (svc *Service) Mine(ctx context.Context) ([]Program, error) {
	return svc.repo.QueryMyPrograms(ctx)
}

// Filter returns the catalog narrowed down by the given filter.
// Filtering happens client-side; the backend has no search parameter.
func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Program, error) {
	filter.Clean()
	programs, err := svc.repo.QueryAllPrograms(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return programs, nil
	}
	matched := make([]Program, 0, len(programs))
	for _, p := range programs {
		if filter.Match(p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (svc *Service) Create(ctx context.Context, np NewProgram) (Program, error) {
	if err := np.Validate(); err != nil {
		return Program{}, err
	}
	return svc.repo.CreateProgram(ctx, np)
}

func (svc *Service) Update(ctx context.Context, id int, up UpdateProgram) (Program, error) {
	if err := up.Validate(); err != nil {
		return Program{}, err
	}
	return svc.repo.UpdateProgram(ctx, id, up)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteProgram(ctx, id)
}

// Roster returns the students enrolled in one program.
func (svc *Service) Roster(ctx context.Context, id int) ([]RosterEntry, error) {
	return svc.repo.QueryProgramRoster(ctx, id)
}

// DaySchedule projects the given programs onto a single date.
func (svc *Service) DaySchedule(programs []Program, day time.Time) []Occurrence {
	occurrences, skipped := ProjectDay(programs, day)
	svc.logSkipped(skipped)
	return occurrences
}

// MonthSchedule projects the given programs onto every date of t's month.
func (svc *Service) MonthSchedule(programs []Program, t time.Time) []Occurrence {
	first, last := MonthRange(t)
	occurrences, skipped := Project(programs, first, last)
	svc.logSkipped(skipped)
	return occurrences
}

func (svc *Service) logSkipped(skipped []ScheduleEntry) {
	for _, s := range skipped {
		svc.log.Warn("schedule entry skipped: unknown day code", map[string]interface{}{
			"dayOfWeek": string(s.DayOfWeek),
			"startTime": s.StartTime,
			"endTime":   s.EndTime,
		})
	}
}
