package requests

// ChatRequest is one conversational turn from the client. A nil
// conversation_id starts a new conversation.
type ChatRequest struct {
	Message        string `json:"message" binding:"required,min=1,max=10000"`
	ConversationID *uint  `json:"conversation_id"`
}
