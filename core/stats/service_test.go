package stats

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/program"
)

type fakeUserRepo struct {
	students    []Student
	teachers    []Teacher
	studentsErr error
	teachersErr error
	deleted     []int
	deleteErr   error
}

var _ Repository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) QueryAllStudents(ctx context.Context) ([]Student, error) {
	return r.students, r.studentsErr
}

func (r *fakeUserRepo) QueryAllTeachers(ctx context.Context) ([]Teacher, error) {
	return r.teachers, r.teachersErr
}

func (r *fakeUserRepo) DeleteStudent(ctx context.Context, id int) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeProgramRepo struct {
	all    []program.Program
	allErr error
}

var _ program.Repository = (*fakeProgramRepo)(nil)

func (r *fakeProgramRepo) QueryAllPrograms(ctx context.Context) ([]program.Program, error) {
	return r.all, r.allErr
}

func (r *fakeProgramRepo) QueryMyPrograms(ctx context.Context) ([]program.Program, error) {
	return nil, nil
}

func (r *fakeProgramRepo) CreateProgram(ctx context.Context, np program.NewProgram) (program.Program, error) {
	return program.Program{}, nil
}

func (r *fakeProgramRepo) UpdateProgram(ctx context.Context, id int, up program.UpdateProgram) (program.Program, error) {
	return program.Program{}, nil
}

func (r *fakeProgramRepo) DeleteProgram(ctx context.Context, id int) error { return nil }

func (r *fakeProgramRepo) QueryProgramRoster(ctx context.Context, id int) ([]program.RosterEntry, error) {
	return nil, nil
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("all sources load", func(t *testing.T) {
		repo := &fakeUserRepo{
			students: []Student{{ID: 1}, {ID: 2}, {ID: 3}},
			teachers: []Teacher{{ID: 1}},
		}
		programs := &fakeProgramRepo{all: []program.Program{{ID: 1}, {ID: 2}}}
		svc := NewService(repo, programs, core.NopLogger{})

		got := svc.Aggregate(ctx)
		if !got.Students.OK() || got.Students.Total != 3 {
			t.Errorf("Students = %+v; want 3, no error", got.Students)
		}
		if !got.Teachers.OK() || got.Teachers.Total != 1 {
			t.Errorf("Teachers = %+v; want 1, no error", got.Teachers)
		}
		if !got.Programs.OK() || got.Programs.Total != 2 {
			t.Errorf("Programs = %+v; want 2, no error", got.Programs)
		}
	})

	t.Run("one failed source does not take down the rest", func(t *testing.T) {
		repo := &fakeUserRepo{
			students:    []Student{{ID: 1}, {ID: 2}},
			teachersErr: errors.Wrap(core.ErrUnavailable, "fetch"),
		}
		programs := &fakeProgramRepo{all: []program.Program{{ID: 1}}}
		svc := NewService(repo, programs, core.NopLogger{})

		got := svc.Aggregate(ctx)
		if !got.Students.OK() || got.Students.Total != 2 {
			t.Errorf("Students = %+v; want 2, no error", got.Students)
		}
		if got.Teachers.OK() {
			t.Error("Teachers.OK() = true; want the fetch error carried")
		}
		if got.Teachers.Total != 0 {
			t.Errorf("Teachers.Total = %d; want 0 for a failed source", got.Teachers.Total)
		}
		if !got.Programs.OK() || got.Programs.Total != 1 {
			t.Errorf("Programs = %+v; want 1, no error", got.Programs)
		}
	})

	t.Run("every source down", func(t *testing.T) {
		repo := &fakeUserRepo{
			studentsErr: errors.Wrap(core.ErrUnavailable, "fetch"),
			teachersErr: errors.Wrap(core.ErrUnavailable, "fetch"),
		}
		programs := &fakeProgramRepo{allErr: errors.Wrap(core.ErrUnavailable, "fetch")}
		svc := NewService(repo, programs, core.NopLogger{})

		got := svc.Aggregate(ctx)
		if got.Students.OK() || got.Teachers.OK() || got.Programs.OK() {
			t.Errorf("Aggregate() = %+v; want every count failed", got)
		}
	})
}

func TestDirectoryListings(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUserRepo{
		students: []Student{
			{ID: 1, Name: "Kim Minjun", Email: "minjun@school.test"},
			{ID: 2, Name: "Lee Seoyeon", Email: "seoyeon@school.test"},
		},
		teachers: []Teacher{
			{ID: 1, Name: "Park Jiho", Email: "jiho@school.test"},
		},
	}
	svc := NewService(repo, &fakeProgramRepo{}, core.NopLogger{})

	t.Run("empty filter returns everyone", func(t *testing.T) {
		students, err := svc.Students(ctx, QueryFilter{})
		if err != nil {
			t.Fatalf("Students() error = %v", err)
		}
		if len(students) != 2 {
			t.Errorf("Students() returned %d; want 2", len(students))
		}
	})

	t.Run("filter matches name case-insensitively", func(t *testing.T) {
		students, err := svc.Students(ctx, QueryFilter{Search: "seoyeon"})
		if err != nil {
			t.Fatalf("Students() error = %v", err)
		}
		if len(students) != 1 || students[0].ID != 2 {
			t.Errorf("Students() = %+v; want only Lee Seoyeon", students)
		}
	})

	t.Run("filter matches email", func(t *testing.T) {
		teachers, err := svc.Teachers(ctx, QueryFilter{Search: "JIHO@"})
		if err != nil {
			t.Fatalf("Teachers() error = %v", err)
		}
		if len(teachers) != 1 || teachers[0].ID != 1 {
			t.Errorf("Teachers() = %+v; want only Park Jiho", teachers)
		}
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		students, err := svc.Students(ctx, QueryFilter{Search: "nobody"})
		if err != nil {
			t.Fatalf("Students() error = %v", err)
		}
		if len(students) != 0 {
			t.Errorf("Students() returned %d; want 0", len(students))
		}
	})
}

func TestDeleteStudent(t *testing.T) {
	ctx := context.Background()

	repo := &fakeUserRepo{}
	svc := NewService(repo, &fakeProgramRepo{}, core.NopLogger{})
	if err := svc.DeleteStudent(ctx, 42); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 42 {
		t.Errorf("DeleteStudent calls = %v; want [42]", repo.deleted)
	}

	repo.deleteErr = errors.Wrap(core.ErrNotFound, "delete")
	if err := svc.DeleteStudent(ctx, 43); errors.Cause(err) != core.ErrNotFound {
		t.Errorf("DeleteStudent() error = %v; want cause %v", err, core.ErrNotFound)
	}
}
