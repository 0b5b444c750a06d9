package task

import (
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

func isNotFound(err error) bool {
	return platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound)
}
