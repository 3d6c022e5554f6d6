package domain

import (
	"time"

	"github.com/google/uuid"
)

type Todo struct {
	ID          int
	UUID        uuid.UUID
	Title       string
	Description *string
	Completed   bool
	UserId      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

// TodoPatch carries the fields a caller supplied on update. A nil field
// means "leave it unchanged", not "clear it".
type TodoPatch struct {
	Title       *string
	Description *string
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}
