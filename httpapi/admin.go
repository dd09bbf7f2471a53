package httpapi

import (
	"context"

	"github.com/trezcool/klabu/core/stats"
)

type statsRepository struct {
	client *Client
}

var _ stats.Repository = (*statsRepository)(nil) // interface compliance check

func NewStatsRepository(c *Client) stats.Repository {
	return &statsRepository{client: c}
}

func (repo *statsRepository) QueryAllStudents(ctx context.Context) ([]stats.Student, error) {
	var students []stats.Student
	if err := repo.client.get(ctx, "/api/users/students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *statsRepository) QueryAllTeachers(ctx context.Context) ([]stats.Teacher, error) {
	var teachers []stats.Teacher
	if err := repo.client.get(ctx, "/api/users/teachers", &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (repo *statsRepository) DeleteStudent(ctx context.Context, id int) error {
	return repo.client.delete(ctx, pathf("/api/users/students/%d", id))
}
