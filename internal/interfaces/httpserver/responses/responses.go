package responses

import (
	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/logger"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

// ErrorResponse documents the error envelope returned by every endpoint.
type ErrorResponse = platformerrors.HTTPErrorResponse

// HandleError writes err as an HTTP error response, wrapping it with a
// fallback message when it is not already a PlatformError.
func HandleError(reqCtx *gin.Context, err error, message string) {
	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		platformErr = platformerrors.AsError(reqCtx.Request.Context(), platformerrors.LayerHandler, err, message)
	}
	platformerrors.WriteHTTPError(reqCtx, platformErr, logger.GetLogger())
}

// HandleNewError writes a fresh error with the given type and message.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	platformErr := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, errorType, message, nil, uuid)
	platformerrors.WriteHTTPError(reqCtx, platformErr, logger.GetLogger())
}
