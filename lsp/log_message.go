package lsp

import (
	"fmt"

	"bennypowers.dev/tokenlint/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// logError logs to stderr and, when connected, to the client's output panel
func logError(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	logMessage(ctx, protocol.MessageTypeError, message)
}

// logWarning is logError at warning level
func logWarning(ctx *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	logMessage(ctx, protocol.MessageTypeWarning, message)
}

func logMessage(ctx *glsp.Context, messageType protocol.MessageType, message string) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	go ctx.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    messageType,
		Message: message,
	})
}
