package notice

import (
	"context"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/program"
)

type (
	// Repository is the backend's announcement surface.
	Repository interface {
		QueryTeacherNotices(ctx context.Context) ([]Notice, error)
		QueryStudentNotices(ctx context.Context) ([]Notice, error)
		CreateNotice(ctx context.Context, classID int, nn NewNotice) (Notice, error)
		UpdateNotice(ctx context.Context, noticeID int, un UpdateNotice) (Notice, error)
		DeleteNotice(ctx context.Context, noticeID int) error
	}

	Service struct {
		repo     Repository
		programs program.Repository
		log      core.Logger
	}
)

func NewService(repo Repository, programs program.Repository, log core.Logger) *Service {
	return &Service{repo: repo, programs: programs, log: log}
}

// ForTeacher returns the teacher's notices reconciled against their own
// program list.
func (svc *Service) ForTeacher(ctx context.Context) ([]Reconciled, error) {
	notices, err := svc.repo.QueryTeacherNotices(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := svc.programs.QueryMyPrograms(ctx)
	if err != nil {
		// a missing program list only loses the join, not the feed
		svc.log.Warn("notice reconciliation without program list", err)
		programs = nil
	}
	return Reconcile(notices, programs), nil
}

// ForStudent returns the student's notices reconciled against the catalog.
func (svc *Service) ForStudent(ctx context.Context) ([]Reconciled, error) {
	notices, err := svc.repo.QueryStudentNotices(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := svc.programs.QueryAllPrograms(ctx)
	if err != nil {
		svc.log.Warn("notice reconciliation without program list", err)
		programs = nil
	}
	return Reconcile(notices, programs), nil
}

// Create posts a new notice and re-fetches the reconciled feed; no
// incremental patching, so local and remote state cannot diverge.
func (svc *Service) Create(ctx context.Context, classID int, nn NewNotice) ([]Reconciled, error) {
	if err := nn.Validate(); err != nil {
		return nil, err
	}
	if _, err := svc.repo.CreateNotice(ctx, classID, nn); err != nil {
		return nil, err
	}
	return svc.ForTeacher(ctx)
}

// Update modifies a notice and re-fetches the reconciled feed.
func (svc *Service) Update(ctx context.Context, noticeID int, un UpdateNotice) ([]Reconciled, error) {
	if err := un.Validate(); err != nil {
		return nil, err
	}
	if _, err := svc.repo.UpdateNotice(ctx, noticeID, un); err != nil {
		return nil, err
	}
	return svc.ForTeacher(ctx)
}

// Delete removes a notice and re-fetches the reconciled feed.
func (svc *Service) Delete(ctx context.Context, noticeID int) ([]Reconciled, error) {
	if err := svc.repo.DeleteNotice(ctx, noticeID); err != nil {
		return nil, err
	}
	return svc.ForTeacher(ctx)
}
