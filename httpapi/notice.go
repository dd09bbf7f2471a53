package httpapi

import (
	"context"

	"github.com/trezcool/klabu/core/notice"
)

type noticeRepository struct {
	client *Client
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(c *Client) notice.Repository {
	return &noticeRepository{client: c}
}

func (repo *noticeRepository) QueryTeacherNotices(ctx context.Context) ([]notice.Notice, error) {
	var notices []notice.Notice
	if err := repo.client.get(ctx, "/api/teachers/me/notices", &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

func (repo *noticeRepository) QueryStudentNotices(ctx context.Context) ([]notice.Notice, error) {
	var notices []notice.Notice
	if err := repo.client.get(ctx, "/api/students/me/notices", &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

func (repo *noticeRepository) CreateNotice(ctx context.Context, classID int, nn notice.NewNotice) (notice.Notice, error) {
	var created notice.Notice
	if err := repo.client.post(ctx, pathf("/api/classes/%d/notices", classID), nn, &created); err != nil {
		return notice.Notice{}, err
	}
	return created, nil
}

func (repo *noticeRepository) UpdateNotice(ctx context.Context, noticeID int, un notice.UpdateNotice) (notice.Notice, error) {
	var updated notice.Notice
	if err := repo.client.put(ctx, pathf("/api/notices/%d", noticeID), un, &updated); err != nil {
		return notice.Notice{}, err
	}
	return updated, nil
}

func (repo *noticeRepository) DeleteNotice(ctx context.Context, noticeID int) error {
	return repo.client.delete(ctx, pathf("/api/notices/%d", noticeID))
}
