package taskrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/task"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/dbschema"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/transaction"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

type TaskRepository struct {
	db *transaction.Database
}

var _ task.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *transaction.Database) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	entity := dbschema.NewSchemaTask(t)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create task", err, "4e19c7d2-8a5f-40b3-9c68-d1e52f07a3b9")
	}
	t.ID = entity.ID
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByIDAndUser loads the row filtered by id AND owner in a single
// query, so an existence probe against another user's task id behaves
// exactly like a missing row.
func (r *TaskRepository) FindByIDAndUser(ctx context.Context, id uint, userID string) (*task.Task, error) {
	var entity dbschema.Task
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("task %d not found", id), nil, "a82f5c16-3d90-4e7b-b4a1-6c08d9e25f73")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find task", err, "70d3b9e8-c247-415a-8f60-92ae5c1d4b36")
	}
	return entity.EtoD(), nil
}

func (r *TaskRepository) FindByFilter(ctx context.Context, filter task.TaskFilter, pagination *query.Pagination) ([]*task.Task, error) {
	tx := r.applyFilter(ctx, filter).
		Order(fmt.Sprintf("created_at %s, id %s", pagination.OrderOrDefault(query.OrderDesc), pagination.OrderOrDefault(query.OrderDesc))).
		Limit(pagination.LimitOrDefault(task.DefaultListLimit)).
		Offset(pagination.OffsetOrZero())

	var entities []dbschema.Task
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list tasks", err, "be25d081-96fc-43a7-bd14-07c3e8a65d92")
	}

	return functional.Map(entities, func(e dbschema.Task) *task.Task {
		return e.EtoD()
	}), nil
}

func (r *TaskRepository) Count(ctx context.Context, filter task.TaskFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(ctx, filter).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count tasks", err, "17f0a6d4-52be-48c9-a073-8d61e29c5fb4")
	}
	return count, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	// Ownership is checked by the caller through FindByIDAndUser before
	// any update reaches this point.
	entity := dbschema.NewSchemaTask(t)
	if err := r.db.GetTx(ctx).WithContext(ctx).Save(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update task", err, "650c2d8e-b1a4-47f3-9e85-3f07d6c19a28")
	}
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint, userID string) error {
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&dbschema.Task{}).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete task", err, "92a7e4f0-6cd8-4b15-a39c-e80d52f7b164")
	}
	return nil
}

func (r *TaskRepository) applyFilter(ctx context.Context, filter task.TaskFilter) *gorm.DB {
	tx := r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Task{})
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	if filter.Completed != nil {
		tx = tx.Where("completed = ?", *filter.Completed)
	}
	return tx
}
