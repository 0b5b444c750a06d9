package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

type mockTaskRepo struct {
	tasks      map[uint]*Task
	nextID     uint
	failCreate bool
	failList   bool
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[uint]*Task), nextID: 1}
}

func (m *mockTaskRepo) Create(_ context.Context, t *Task) error {
	if m.failCreate {
		return fmt.Errorf("connection refused")
	}
	t.ID = m.nextID
	m.nextID++
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *mockTaskRepo) FindByIDAndUser(ctx context.Context, id uint, userID string) (*Task, error) {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "task not found", nil, "")
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskRepo) FindByFilter(_ context.Context, filter TaskFilter, pagination *query.Pagination) ([]*Task, error) {
	if m.failList {
		return nil, fmt.Errorf("connection refused")
	}
	matched := m.match(filter)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	offset := pagination.OffsetOrZero()
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit := pagination.LimitOrDefault(DefaultListLimit); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *mockTaskRepo) Count(_ context.Context, filter TaskFilter) (int64, error) {
	return int64(len(m.match(filter))), nil
}

func (m *mockTaskRepo) match(filter TaskFilter) []*Task {
	var out []*Task
	for _, t := range m.tasks {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out
}

func (m *mockTaskRepo) Update(_ context.Context, t *Task) error {
	copied := *t
	m.tasks[t.ID] = &copied
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id uint, userID string) error {
	if t, ok := m.tasks[id]; ok && t.UserID == userID {
		delete(m.tasks, id)
	}
	return nil
}

func newTestTaskService(repo *mockTaskRepo) *TaskService {
	return NewTaskService(repo, zerolog.Nop())
}

func TestAddTask(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())

	desc := "milk and eggs"
	result := svc.AddTask(context.Background(), "alice", "Buy groceries", &desc)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Task == nil || result.Task.ID == 0 {
		t.Fatalf("expected task with assigned id")
	}
	if result.Task.Completed {
		t.Fatalf("new task must start pending")
	}
	if result.Task.Title != "Buy groceries" {
		t.Fatalf("unexpected title %q", result.Task.Title)
	}
}

func TestAddTaskValidation(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())

	cases := []struct {
		name    string
		title   string
		desc    *string
		message string
	}{
		{"empty title", "", nil, "Title must not be empty"},
		{"whitespace title", "   ", nil, "Title must not be empty"},
		{"long title", strings.Repeat("x", MaxTitleLength+1), nil, "Title must be 200 characters or less"},
		{"null byte title", "buy\x00milk", nil, "Title contains invalid characters"},
	}

	longDesc := strings.Repeat("y", MaxDescriptionLength+1)
	cases = append(cases, struct {
		name    string
		title   string
		desc    *string
		message string
	}{"long description", "ok", &longDesc, "Description must be 1000 characters or less"})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := svc.AddTask(context.Background(), "alice", tc.title, tc.desc)
			if result.Success {
				t.Fatalf("expected failure")
			}
			if result.Error != ErrValidation {
				t.Fatalf("expected %s, got %s", ErrValidation, result.Error)
			}
			if result.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, result.Message)
			}
		})
	}
}

func TestAddTaskSanitizesHTML(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())

	result := svc.AddTask(context.Background(), "alice", `<script>alert("hi")</script>`, nil)
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if strings.Contains(result.Task.Title, "<") || strings.Contains(result.Task.Title, ">") {
		t.Fatalf("title not escaped: %q", result.Task.Title)
	}
}

func TestAddTaskDatabaseError(t *testing.T) {
	repo := newMockTaskRepo()
	repo.failCreate = true
	svc := newTestTaskService(repo)

	result := svc.AddTask(context.Background(), "alice", "ok", nil)
	if result.Success || result.Error != ErrDatabase {
		t.Fatalf("expected database error, got %+v", result)
	}
}

func TestListTasksFilters(t *testing.T) {
	repo := newMockTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()

	svc.AddTask(ctx, "alice", "one", nil)
	svc.AddTask(ctx, "alice", "two", nil)
	svc.AddTask(ctx, "bob", "theirs", nil)
	svc.CompleteTask(ctx, "alice", 1)

	all := svc.ListTasks(ctx, "alice", FilterAll, DefaultListLimit, 0)
	if !all.Success || len(all.Tasks) != 2 || *all.Total != 2 {
		t.Fatalf("expected 2 tasks for alice, got %+v", all)
	}

	pending := svc.ListTasks(ctx, "alice", FilterPending, DefaultListLimit, 0)
	if len(pending.Tasks) != 1 || pending.Tasks[0].Title != "two" {
		t.Fatalf("expected pending task 'two', got %+v", pending.Tasks)
	}

	completed := svc.ListTasks(ctx, "alice", FilterCompleted, DefaultListLimit, 0)
	if len(completed.Tasks) != 1 || completed.Tasks[0].Title != "one" {
		t.Fatalf("expected completed task 'one', got %+v", completed.Tasks)
	}

	invalid := svc.ListTasks(ctx, "alice", "done", DefaultListLimit, 0)
	if invalid.Success || invalid.Error != ErrValidation {
		t.Fatalf("expected validation error for bad filter, got %+v", invalid)
	}
}

func TestListTasksPagination(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.AddTask(ctx, "alice", fmt.Sprintf("task %d", i), nil)
	}

	page := svc.ListTasks(ctx, "alice", FilterAll, 2, 0)
	if len(page.Tasks) != 2 || *page.Total != 5 || !*page.HasMore {
		t.Fatalf("unexpected first page: %+v", page)
	}

	last := svc.ListTasks(ctx, "alice", FilterAll, 2, 4)
	if len(last.Tasks) != 1 || *last.HasMore {
		t.Fatalf("unexpected last page: %+v", last)
	}

	empty := svc.ListTasks(ctx, "alice", FilterAll, 2, 10)
	if !empty.Success || len(empty.Tasks) != 0 || *empty.HasMore {
		t.Fatalf("expected empty page past the end, got %+v", empty)
	}
}

func TestCompleteTaskIdempotent(t *testing.T) {
	repo := newMockTaskRepo()
	svc := newTestTaskService(repo)
	ctx := context.Background()
	svc.AddTask(ctx, "alice", "one", nil)

	first := svc.CompleteTask(ctx, "alice", 1)
	if !first.Success || !first.Task.Completed {
		t.Fatalf("expected completion, got %+v", first)
	}

	// Age the stored task so the repeat call's bump is observable.
	aged := time.Now().UTC().Add(-time.Hour)
	repo.tasks[1].UpdatedAt = aged

	second := svc.CompleteTask(ctx, "alice", 1)
	if !second.Success || !second.Task.Completed {
		t.Fatalf("expected repeat completion to succeed, got %+v", second)
	}
	if !repo.tasks[1].UpdatedAt.After(aged) {
		t.Fatalf("repeat complete did not bump updated_at: %v", repo.tasks[1].UpdatedAt)
	}
}

func TestCompleteTaskValidation(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())

	for _, id := range []int{0, -3} {
		result := svc.CompleteTask(context.Background(), "alice", id)
		if result.Success || result.Error != ErrValidation || result.Message != "task_id must be a positive integer" {
			t.Fatalf("expected validation error for id %d, got %+v", id, result)
		}
	}
}

func TestTaskOwnershipIsolation(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	ctx := context.Background()
	svc.AddTask(ctx, "alice", "hers", nil)

	if result := svc.CompleteTask(ctx, "bob", 1); result.Success || result.Error != ErrNotFound {
		t.Fatalf("expected not found for foreign complete, got %+v", result)
	}
	if result := svc.DeleteTask(ctx, "bob", 1); result.Success || result.Error != ErrNotFound {
		t.Fatalf("expected not found for foreign delete, got %+v", result)
	}
	title := "stolen"
	if result := svc.UpdateTask(ctx, "bob", 1, &title, nil, nil); result.Success || result.Error != ErrNotFound {
		t.Fatalf("expected not found for foreign update, got %+v", result)
	}

	// Alice's task is untouched.
	kept := svc.ListTasks(ctx, "alice", FilterAll, DefaultListLimit, 0)
	if len(kept.Tasks) != 1 || kept.Tasks[0].Title != "hers" {
		t.Fatalf("task mutated by foreign user: %+v", kept.Tasks)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	ctx := context.Background()
	svc.AddTask(ctx, "alice", "one", nil)

	result := svc.DeleteTask(ctx, "alice", 1)
	if !result.Success || result.DeletedTaskID == nil || *result.DeletedTaskID != 1 {
		t.Fatalf("unexpected delete result: %+v", result)
	}

	again := svc.DeleteTask(ctx, "alice", 1)
	if again.Success || again.Error != ErrNotFound {
		t.Fatalf("expected not found on second delete, got %+v", again)
	}
}

func TestUpdateTask(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	ctx := context.Background()
	desc := "original"
	svc.AddTask(ctx, "alice", "one", &desc)

	newTitle := "renamed"
	completed := true
	result := svc.UpdateTask(ctx, "alice", 1, &newTitle, nil, &completed)
	if !result.Success {
		t.Fatalf("unexpected failure: %+v", result)
	}
	if result.Task.Title != "renamed" || !result.Task.Completed {
		t.Fatalf("update not applied: %+v", result.Task)
	}
	if result.Task.Description == nil || *result.Task.Description != "original" {
		t.Fatalf("omitted field must be untouched: %+v", result.Task)
	}
}

func TestUpdateTaskRequiresField(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	svc.AddTask(context.Background(), "alice", "one", nil)

	result := svc.UpdateTask(context.Background(), "alice", 1, nil, nil, nil)
	if result.Success || result.Error != ErrValidation {
		t.Fatalf("expected validation error, got %+v", result)
	}
	if result.Message != "At least one of title, description, or completed must be provided" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestUpdateTaskStripsNullBytes(t *testing.T) {
	svc := newTestTaskService(newMockTaskRepo())
	ctx := context.Background()
	svc.AddTask(ctx, "alice", "one", nil)

	title := "re\x00named"
	result := svc.UpdateTask(ctx, "alice", 1, &title, nil, nil)
	if !result.Success {
		t.Fatalf("expected NUL bytes to be stripped on update, got %+v", result)
	}
	if result.Task.Title != "renamed" {
		t.Fatalf("expected sanitized title, got %q", result.Task.Title)
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize("  a & b <c> \x00 ")
	if strings.ContainsRune(got, '\x00') {
		t.Fatalf("NUL byte survived: %q", got)
	}
	if !strings.Contains(got, "&amp;") || !strings.Contains(got, "&lt;c&gt;") {
		t.Fatalf("expected HTML escaping, got %q", got)
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}
