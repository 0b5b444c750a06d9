package conversationhandler

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
)

type mockConversationRepo struct {
	conversations map[uint]*conversation.Conversation
	messages      map[uint][]*conversation.Message
	nextConvID    uint
	nextMsgID     uint
}

func newMockRepo() *mockConversationRepo {
	return &mockConversationRepo{
		conversations: make(map[uint]*conversation.Conversation),
		messages:      make(map[uint][]*conversation.Message),
	}
}

func (r *mockConversationRepo) Create(_ context.Context, conv *conversation.Conversation) error {
	r.nextConvID++
	conv.ID = r.nextConvID
	r.conversations[conv.ID] = conv
	return nil
}

func (r *mockConversationRepo) FindByID(_ context.Context, id uint) (*conversation.Conversation, error) {
	conv, ok := r.conversations[id]
	if !ok {
		return nil, errors.New("conversation not found")
	}
	return conv, nil
}

func (r *mockConversationRepo) FindByFilter(_ context.Context, filter conversation.ConversationFilter, pagination *query.Pagination) ([]*conversation.Conversation, error) {
	var out []*conversation.Conversation
	for _, conv := range r.conversations {
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		out = append(out, conv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	offset := pagination.OffsetOrZero()
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	limit := pagination.LimitOrDefault(conversation.DefaultListLimit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *mockConversationRepo) Count(_ context.Context, filter conversation.ConversationFilter) (int64, error) {
	count := int64(0)
	for _, conv := range r.conversations {
		if filter.UserID != nil && conv.UserID != *filter.UserID {
			continue
		}
		count++
	}
	return count, nil
}

func (r *mockConversationRepo) DeleteWithMessages(_ context.Context, id uint) (int64, error) {
	count := int64(len(r.messages[id]))
	delete(r.conversations, id)
	delete(r.messages, id)
	return count, nil
}

func (r *mockConversationRepo) AddMessage(_ context.Context, conversationID uint, msg *conversation.Message) error {
	r.nextMsgID++
	msg.ID = r.nextMsgID
	r.messages[conversationID] = append(r.messages[conversationID], msg)
	return nil
}

func (r *mockConversationRepo) FindRecentMessages(_ context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	msgs := r.messages[conversationID]
	start := len(msgs) - limit
	if start < 0 {
		start = 0
	}
	recent := msgs[start:]
	reversed := make([]*conversation.Message, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		reversed = append(reversed, recent[i])
	}
	return reversed, nil
}

func (r *mockConversationRepo) FindMessages(_ context.Context, conversationID uint, _ *query.Pagination) ([]*conversation.Message, error) {
	return r.messages[conversationID], nil
}

func (r *mockConversationRepo) CountMessages(_ context.Context, conversationID uint) (int64, error) {
	return int64(len(r.messages[conversationID])), nil
}

func newTestHandler() (*ConversationHandler, *mockConversationRepo) {
	repo := newMockRepo()
	service := conversation.NewConversationService(repo, conversation.ApproxTokenEstimator{}, 20, 4000)
	return NewConversationHandler(service), repo
}

func seedConversation(t *testing.T, repo *mockConversationRepo, userID string, messages ...string) *conversation.Conversation {
	t.Helper()
	conv := conversation.NewConversation(userID)
	if err := repo.Create(context.Background(), conv); err != nil {
		t.Fatalf("seed conversation: %v", err)
	}
	for i, content := range messages {
		role := conversation.MessageRoleUser
		if i%2 == 1 {
			role = conversation.MessageRoleAssistant
		}
		if err := repo.AddMessage(context.Background(), conv.ID, conversation.NewMessage(conv.ID, userID, role, content)); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	return conv
}

func TestListConversationsScopedToUser(t *testing.T) {
	handler, repo := newTestHandler()
	seedConversation(t, repo, "alice")
	seedConversation(t, repo, "alice")
	seedConversation(t, repo, "bob")

	resp, err := handler.ListConversations(context.Background(), "alice", &query.Pagination{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 || len(resp.Conversations) != 2 {
		t.Fatalf("expected 2 conversations, got total=%d len=%d", resp.Total, len(resp.Conversations))
	}
	if resp.HasMore {
		t.Fatal("has_more should be false")
	}
}

func TestListConversationsPagination(t *testing.T) {
	handler, repo := newTestHandler()
	for i := 0; i < 5; i++ {
		seedConversation(t, repo, "alice")
	}

	limit := 2
	resp, err := handler.ListConversations(context.Background(), "alice", &query.Pagination{Limit: &limit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Conversations) != 2 || resp.Total != 5 {
		t.Fatalf("expected page of 2 out of 5, got len=%d total=%d", len(resp.Conversations), resp.Total)
	}
	if !resp.HasMore {
		t.Fatal("has_more should be true")
	}
}

func TestGetConversationOwnership(t *testing.T) {
	handler, repo := newTestHandler()
	conv := seedConversation(t, repo, "alice")

	if _, err := handler.GetConversation(context.Background(), "alice", conv.ID); err != nil {
		t.Fatalf("owner should read own conversation: %v", err)
	}
	if _, err := handler.GetConversation(context.Background(), "bob", conv.ID); err == nil {
		t.Fatal("foreign conversation should be rejected")
	}
}

func TestGetMessagesChronological(t *testing.T) {
	handler, repo := newTestHandler()
	conv := seedConversation(t, repo, "alice", "first", "second", "third")

	resp, err := handler.GetMessages(context.Background(), "alice", conv.ID, &query.Pagination{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Messages) != 3 || resp.Total != 3 {
		t.Fatalf("expected 3 messages, got len=%d total=%d", len(resp.Messages), resp.Total)
	}
	if resp.Messages[0].Content != "first" || resp.Messages[2].Content != "third" {
		t.Fatalf("messages out of order: %+v", resp.Messages)
	}
	if resp.Messages[1].Role != "assistant" {
		t.Fatalf("expected assistant role, got %q", resp.Messages[1].Role)
	}
}

func TestDeleteConversationReportsCount(t *testing.T) {
	handler, repo := newTestHandler()
	conv := seedConversation(t, repo, "alice", "one", "two")

	resp, err := handler.DeleteConversation(context.Background(), "alice", conv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Deleted || resp.MessagesDeleted != 2 {
		t.Fatalf("unexpected delete response: %+v", resp)
	}
	if _, ok := repo.conversations[conv.ID]; ok {
		t.Fatal("conversation should be gone")
	}
}

func TestDeleteForeignConversationRejected(t *testing.T) {
	handler, repo := newTestHandler()
	conv := seedConversation(t, repo, "alice", "one")

	if _, err := handler.DeleteConversation(context.Background(), "bob", conv.ID); err == nil {
		t.Fatal("foreign delete should be rejected")
	}
	if _, ok := repo.conversations[conv.ID]; !ok {
		t.Fatal("conversation should survive a rejected delete")
	}
}
