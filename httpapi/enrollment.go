package httpapi

import (
	"context"

	"github.com/trezcool/klabu/core/enrollment"
	"github.com/trezcool/klabu/core/program"
)

type enrollmentRepository struct {
	client *Client
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(c *Client) enrollment.Repository {
	return &enrollmentRepository{client: c}
}

// Enroll has no request body; the backend derives the student from the token.
func (repo *enrollmentRepository) Enroll(ctx context.Context, programID int) error {
	return repo.client.post(ctx, pathf("/api/classes/%d/enroll", programID), nil, nil)
}

func (repo *enrollmentRepository) QueryMyClasses(ctx context.Context) ([]program.Program, error) {
	var classes []program.Program
	if err := repo.client.get(ctx, "/api/students/me/classes", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}
