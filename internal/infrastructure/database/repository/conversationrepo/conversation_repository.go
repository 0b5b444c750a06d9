package conversationrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/dbschema"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/transaction"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

type ConversationRepository struct {
	db *transaction.Database
}

var _ conversation.ConversationRepository = (*ConversationRepository)(nil)

func NewConversationRepository(db *transaction.Database) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "b4c82e1f-7a95-4d30-8c61-f2d9a0e53b87")
	}
	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := r.db.GetTx(ctx).WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("conversation %d not found", id), nil, "9d35f0a8-2c61-4b79-ae04-17e8b5c3d246")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation", err, "5a0e7c93-d812-46fb-b5a9-c4263f18e07d")
	}
	return entity.EtoD(), nil
}

func (r *ConversationRepository) FindByFilter(ctx context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) ([]*conversation.Conversation, error) {
	tx := r.applyFilter(ctx, filter)

	sortBy := "updated_at"
	if pagination != nil && pagination.SortBy == "created_at" {
		sortBy = "created_at"
	}
	tx = tx.Order(fmt.Sprintf("%s %s", sortBy, pagination.OrderOrDefault(query.OrderDesc)))
	tx = tx.Limit(pagination.LimitOrDefault(conversation.DefaultListLimit)).Offset(pagination.OffsetOrZero())

	var entities []dbschema.Conversation
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "f6b1d4e0-39c7-4a28-95d3-8e02c71fa654")
	}

	return functional.Map(entities, func(e dbschema.Conversation) *conversation.Conversation {
		return e.EtoD()
	}), nil
}

func (r *ConversationRepository) Count(ctx context.Context, filter conversation.ConversationFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(ctx, filter).Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count conversations", err, "13c59e82-b6f0-47da-a1c8-e94d20b75f31")
	}
	return count, nil
}

func (r *ConversationRepository) DeleteWithMessages(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.GetTx(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbschema.Message{}).Where("conversation_id = ?", id).Count(&deleted).Error; err != nil {
			return err
		}
		if err := tx.Where("conversation_id = ?", id).Delete(&dbschema.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbschema.Conversation{}, id).Error
	})
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation", err, "08d6b3f5-e791-4c2a-bd50-6a9e83c41f72")
	}
	return deleted, nil
}

// AddMessage stores the message and bumps the parent conversation's
// updated_at inside one transaction so listings sorted by recency stay
// consistent with message arrival.
func (r *ConversationRepository) AddMessage(ctx context.Context, conversationID uint, msg *conversation.Message) error {
	entity := dbschema.NewSchemaMessage(msg)
	entity.ConversationID = conversationID

	err := r.db.GetTx(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		return tx.Model(&dbschema.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", entity.CreatedAt).Error
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to store message", err, "c1f8e627-4b05-49d3-a8c2-75e01d9b3fa6")
	}

	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	return nil
}

func (r *ConversationRepository) FindRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	var entities []dbschema.Message
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entities).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load recent messages", err, "621d90c4-ae37-4f58-b2e6-0c84f5a1d793")
	}

	return functional.Map(entities, func(e dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}

func (r *ConversationRepository) FindMessages(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*conversation.Message, error) {
	tx := r.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(pagination.LimitOrDefault(conversation.DefaultListLimit)).
		Offset(pagination.OffsetOrZero())

	var entities []dbschema.Message
	if err := tx.Find(&entities).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load messages", err, "d90a52b7-16ce-4f83-ba49-3e7f60c21d85")
	}

	return functional.Map(entities, func(e dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}

func (r *ConversationRepository) CountMessages(ctx context.Context, conversationID uint) (int64, error) {
	var count int64
	err := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count messages", err, "3bf47a10-d5e9-4682-8c3b-a217e09f64d8")
	}
	return count, nil
}

func (r *ConversationRepository) applyFilter(ctx context.Context, filter conversation.ConversationFilter) *gorm.DB {
	tx := r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Conversation{})
	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}
	return tx
}
