package stats

import (
	"context"
	"sync"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/program"
)

type (
	// Repository is the backend's admin user surface.
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		DeleteStudent(ctx context.Context, id int) error
	}

	// Count is one dashboard figure. A failed source keeps Total at zero and
	// carries its own error; it never blocks the other sources.
	Count struct {
		Total int
		Err   error
	}

	Stats struct {
		Students Count
		Teachers Count
		Programs Count
	}

	Service struct {
		repo     Repository
		programs program.Repository
		log      core.Logger
	}
)

// OK reports whether the source loaded.
func (c Count) OK() bool { return c.Err == nil }

func NewService(repo Repository, programs program.Repository, log core.Logger) *Service {
	return &Service{repo: repo, programs: programs, log: log}
}

// Aggregate fetches students, teachers and programs independently and reduces
// them to totals. The three fetches run concurrently and may complete in any
// order; each failure is isolated to its own Count.
func (svc *Service) Aggregate(ctx context.Context) Stats {
	var stats Stats
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		students, err := svc.repo.QueryAllStudents(ctx)
		if err != nil {
			svc.log.Warn("students fetch failed", err)
			stats.Students.Err = err
			return
		}
		stats.Students.Total = len(students)
	}()
	go func() {
		defer wg.Done()
		teachers, err := svc.repo.QueryAllTeachers(ctx)
		if err != nil {
			svc.log.Warn("teachers fetch failed", err)
			stats.Teachers.Err = err
			return
		}
		stats.Teachers.Total = len(teachers)
	}()
	go func() {
		defer wg.Done()
		programs, err := svc.programs.QueryAllPrograms(ctx)
		if err != nil {
			svc.log.Warn("programs fetch failed", err)
			stats.Programs.Err = err
			return
		}
		stats.Programs.Total = len(programs)
	}()

	wg.Wait()
	return stats
}

// Students returns the student directory narrowed down by the given filter.
func (svc *Service) Students(ctx context.Context, filter QueryFilter) ([]Student, error) {
	filter.Clean()
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return students, nil
	}
	matched := make([]Student, 0, len(students))
	for _, s := range students {
		if filter.MatchStudent(s) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// Teachers returns the teacher directory narrowed down by the given filter.
func (svc *Service) Teachers(ctx context.Context, filter QueryFilter) ([]Teacher, error) {
	filter.Clean()
	teachers, err := svc.repo.QueryAllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return teachers, nil
	}
	matched := make([]Teacher, 0, len(teachers))
	for _, t := range teachers {
		if filter.MatchTeacher(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}
