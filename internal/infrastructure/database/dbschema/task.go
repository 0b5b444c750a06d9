package dbschema

import (
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/task"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Task{})
}

// Task represents the database schema for tasks. Title and description
// are stored post-sanitization, so escaped text may exceed the
// user-facing length limits; the columns are sized for the escaped form.
type Task struct {
	BaseModel
	UserID      string  `gorm:"type:varchar(255);index:idx_task_user_completed;not null"`
	Title       string  `gorm:"type:varchar(1000);not null"`
	Description *string `gorm:"type:text"`
	Completed   bool    `gorm:"index:idx_task_user_completed;not null;default:false"`
}

// NewSchemaTask creates a database schema from a domain task
func NewSchemaTask(t *task.Task) *Task {
	return &Task{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}

// EtoD converts database schema to domain task (Entity to Domain)
func (t *Task) EtoD() *task.Task {
	return &task.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
