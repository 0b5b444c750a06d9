package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
)

// Error tags reported back to the model inside tool results.
const (
	ErrValidation = "ValidationError"
	ErrNotFound   = "NotFoundError"
	ErrDatabase   = "DatabaseError"
)

// View is the model-facing projection of a task. Timestamps are
// ISO-8601 strings so the model can echo them verbatim.
type View struct {
	ID          uint    `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Result is the envelope every task tool returns. It is serialized as
// JSON into the tool message, so failures are data the model can relay
// rather than errors that abort the turn.
type Result struct {
	Success       bool   `json:"success"`
	Task          *View  `json:"task,omitempty"`
	Tasks         []View `json:"tasks,omitempty"`
	Total         *int64 `json:"total,omitempty"`
	HasMore       *bool  `json:"has_more,omitempty"`
	DeletedTaskID *uint  `json:"deleted_task_id,omitempty"`
	Error         string `json:"error,omitempty"`
	Message       string `json:"message,omitempty"`
}

func toView(t *Task) *View {
	return &View{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func validationError(message string) Result {
	return Result{Success: false, Error: ErrValidation, Message: message}
}

func notFoundError(taskID int) Result {
	return Result{Success: false, Error: ErrNotFound, Message: fmt.Sprintf("Task with id %d not found", taskID)}
}

func databaseError(message string) Result {
	return Result{Success: false, Error: ErrDatabase, Message: message}
}

// TaskService implements the five task operations exposed to the model.
// Every operation is scoped to the authenticated user; a task owned by
// another user is reported as not found.
type TaskService struct {
	repo TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func validateTitle(title string) (string, string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", "Title must not be empty"
	}
	if len([]rune(trimmed)) > MaxTitleLength {
		return "", fmt.Sprintf("Title must be %d characters or less", MaxTitleLength)
	}
	if ContainsNullByte(trimmed) {
		return "", "Title contains invalid characters"
	}
	return trimmed, ""
}

func validateDescription(description string) (string, string) {
	if len([]rune(description)) > MaxDescriptionLength {
		return "", fmt.Sprintf("Description must be %d characters or less", MaxDescriptionLength)
	}
	if ContainsNullByte(description) {
		return "", "Description contains invalid characters"
	}
	return description, ""
}

// AddTask creates a pending task after validating and sanitizing input.
func (s *TaskService) AddTask(ctx context.Context, userID, title string, description *string) Result {
	trimmed, msg := validateTitle(title)
	if msg != "" {
		return validationError(msg)
	}

	var desc *string
	if description != nil {
		validated, msg := validateDescription(*description)
		if msg != "" {
			return validationError(msg)
		}
		sanitized := Sanitize(validated)
		desc = &sanitized
	}

	t := NewTask(userID, Sanitize(trimmed), desc)
	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("add task failed")
		return databaseError("Database error occurred while adding the task")
	}

	result := Result{Success: true, Task: toView(t)}
	result.Message = fmt.Sprintf("Task '%s' added successfully", t.Title)
	return result
}

// ListTasks returns a page of the user's tasks, newest first.
func (s *TaskService) ListTasks(ctx context.Context, userID, filter string, limit, offset int) Result {
	if filter == "" {
		filter = FilterAll
	}

	taskFilter := TaskFilter{UserID: &userID}
	switch filter {
	case FilterAll:
	case FilterPending:
		pending := false
		taskFilter.Completed = &pending
	case FilterCompleted:
		completed := true
		taskFilter.Completed = &completed
	default:
		return validationError("Filter must be one of: all, pending, completed")
	}

	if limit < 1 || limit > MaxListLimit {
		return validationError(fmt.Sprintf("Limit must be between 1 and %d", MaxListLimit))
	}
	if offset < 0 {
		return validationError("Offset must be non-negative")
	}

	pagination := &query.Pagination{Limit: &limit, Offset: &offset, Order: query.OrderDesc, SortBy: "created_at"}
	tasks, err := s.repo.FindByFilter(ctx, taskFilter, pagination)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("list tasks failed")
		return databaseError("Database error occurred while listing tasks")
	}

	total, err := s.repo.Count(ctx, taskFilter)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("count tasks failed")
		return databaseError("Database error occurred while listing tasks")
	}

	hasMore := int64(offset+len(tasks)) < total
	views := functional.Map(tasks, func(t *Task) View { return *toView(t) })
	if views == nil {
		views = []View{}
	}

	return Result{Success: true, Tasks: views, Total: &total, HasMore: &hasMore}
}

// CompleteTask marks a task as completed. Repeating the call on an
// already completed task succeeds and still bumps updated_at.
func (s *TaskService) CompleteTask(ctx context.Context, userID string, taskID int) Result {
	if taskID < 1 {
		return validationError("task_id must be a positive integer")
	}

	t, err := s.repo.FindByIDAndUser(ctx, uint(taskID), userID)
	if err != nil {
		return s.lookupFailure(err, userID, taskID, "complete")
	}

	t.Completed = true
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int("task_id", taskID).Msg("complete task failed")
		return databaseError("Database error occurred while completing the task")
	}

	result := Result{Success: true, Task: toView(t)}
	result.Message = fmt.Sprintf("Task %d marked as completed", taskID)
	return result
}

// DeleteTask removes a task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, userID string, taskID int) Result {
	if taskID < 1 {
		return validationError("task_id must be a positive integer")
	}

	if _, err := s.repo.FindByIDAndUser(ctx, uint(taskID), userID); err != nil {
		return s.lookupFailure(err, userID, taskID, "delete")
	}

	if err := s.repo.Delete(ctx, uint(taskID), userID); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int("task_id", taskID).Msg("delete task failed")
		return databaseError("Database error occurred while deleting the task")
	}

	deletedID := uint(taskID)
	return Result{
		Success:       true,
		DeletedTaskID: &deletedID,
		Message:       fmt.Sprintf("Task %d deleted successfully", taskID),
	}
}

// UpdateTask applies a partial update. At least one mutable field must
// be provided; omitted fields are left untouched.
func (s *TaskService) UpdateTask(ctx context.Context, userID string, taskID int, title, description *string, completed *bool) Result {
	if taskID < 1 {
		return validationError("task_id must be a positive integer")
	}
	if title == nil && description == nil && completed == nil {
		return validationError("At least one of title, description, or completed must be provided")
	}

	t, err := s.repo.FindByIDAndUser(ctx, uint(taskID), userID)
	if err != nil {
		return s.lookupFailure(err, userID, taskID, "update")
	}

	// Unlike creation, NUL bytes here are stripped by Sanitize rather
	// than rejected, so a partial update never fails on residue the
	// model copied from an earlier read.
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return validationError("Title must not be empty")
		}
		if len([]rune(trimmed)) > MaxTitleLength {
			return validationError(fmt.Sprintf("Title must be %d characters or less", MaxTitleLength))
		}
		t.Title = Sanitize(trimmed)
	}
	if description != nil {
		if len([]rune(*description)) > MaxDescriptionLength {
			return validationError(fmt.Sprintf("Description must be %d characters or less", MaxDescriptionLength))
		}
		sanitized := Sanitize(*description)
		t.Description = &sanitized
	}
	if completed != nil {
		t.Completed = *completed
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int("task_id", taskID).Msg("update task failed")
		return databaseError("Database error occurred while updating the task")
	}

	result := Result{Success: true, Task: toView(t)}
	result.Message = fmt.Sprintf("Task %d updated successfully", taskID)
	return result
}

func (s *TaskService) lookupFailure(err error, userID string, taskID int, op string) Result {
	if isNotFound(err) {
		return notFoundError(taskID)
	}
	s.log.Error().Err(err).Str("user_id", userID).Int("task_id", taskID).Str("op", op).Msg("task lookup failed")
	return databaseError(fmt.Sprintf("Database error occurred while looking up task %d", taskID))
}
