package task

import (
	"context"
	"time"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000

	// DefaultListLimit bounds list results when the model omits a limit.
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Filter values accepted by ListTasks.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterCompleted = "completed"
)

type Task struct {
	ID          uint      `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskFilter struct {
	UserID    *string
	Completed *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error

	// FindByIDAndUser returns the task only when it belongs to the user.
	// A task owned by someone else reports not-found.
	FindByIDAndUser(ctx context.Context, id uint, userID string) (*Task, error)

	FindByFilter(ctx context.Context, filter TaskFilter, pagination *query.Pagination) ([]*Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id uint, userID string) error
}

// NewTask creates a pending task owned by the given user. Title and
// description must already be validated and sanitized.
func NewTask(userID, title string, description *string) *Task {
	now := time.Now().UTC()
	return &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
