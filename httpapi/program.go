package httpapi

import (
	"context"

	"github.com/trezcool/klabu/core/program"
)

type programRepository struct {
	client *Client
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(c *Client) program.Repository {
	return &programRepository{client: c}
}

func (repo *programRepository) QueryAllPrograms(ctx context.Context) ([]program.Program, error) {
	var programs []program.Program
	if err := repo.client.get(ctx, "/api/classes", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (repo *programRepository) QueryMyPrograms(ctx context.Context) ([]program.Program, error) {
	var programs []program.Program
	if err := repo.client.get(ctx, "/api/teachers/me/classes", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

func (repo *programRepository) CreateProgram(ctx context.Context, np program.NewProgram) (program.Program, error) {
	var created program.Program
	if err := repo.client.post(ctx, "/api/classes", np, &created); err != nil {
		return program.Program{}, err
	}
	return created, nil
}

func (repo *programRepository) UpdateProgram(ctx context.Context, id int, up program.UpdateProgram) (program.Program, error) {
	var updated program.Program
	if err := repo.client.put(ctx, pathf("/api/classes/%d", id), up, &updated); err != nil {
		return program.Program{}, err
	}
	return updated, nil
}

func (repo *programRepository) DeleteProgram(ctx context.Context, id int) error {
	return repo.client.delete(ctx, pathf("/api/classes/%d", id))
}

func (repo *programRepository) QueryProgramRoster(ctx context.Context, id int) ([]program.RosterEntry, error) {
	var roster []program.RosterEntry
	if err := repo.client.get(ctx, pathf("/api/classes/%d/students", id), &roster); err != nil {
		return nil, err
	}
	return roster, nil
}
