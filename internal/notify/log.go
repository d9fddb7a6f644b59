// Package notify contains notification delivery stand-ins. The core only
// emits events; real delivery (SMTP or otherwise) lives outside it.
package notify

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/auth"
	"github.com/dmitrijs2005/credvault/internal/logging"
)

// LogNotifier records notification events in the log instead of sending
// mail. Used by the CLI where no mail relay is configured.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, e auth.Notification) error {
	n.log.Info(ctx, "notification emitted", "to", e.ToEmail, "subject", e.Subject)
	return nil
}
