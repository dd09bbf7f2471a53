package notice

import (
	"time"

	"github.com/trezcool/klabu/core"
)

// Type tells students how to read a notice.
type Type string

const (
	TypeCommon   Type = "COMMON"
	TypeCanceled Type = "CANCELED"
	TypeChange   Type = "CHANGE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCommon, TypeCanceled, TypeChange:
		return true
	}
	return false
}

// Notice is an announcement as the backend returns it. ClassTitle is a plain
// string, NOT a foreign key; the program it belongs to must be re-derived by
// name (see Reconcile).
type Notice struct {
	ID          int       `json:"noticeId"`
	ClassTitle  string    `json:"classTitle"`
	TeacherName string    `json:"teacherName"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Type        Type      `json:"noticeType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewNotice contains information needed to create a new Notice.
type NewNotice struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    Type   `json:"noticeType" validate:"required,noticetype"`
}

func (nn *NewNotice) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	return core.Validate.Struct(nn)
}

// UpdateNotice defines what information may be provided to modify an existing Notice.
type UpdateNotice struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Type    Type   `json:"noticeType" validate:"required,noticetype"`
}

func (un *UpdateNotice) Validate() error {
	un.Title = core.CleanString(un.Title)
	un.Content = core.CleanString(un.Content)
	return core.Validate.Struct(un)
}
