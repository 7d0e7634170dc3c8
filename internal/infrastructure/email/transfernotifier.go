// Package email delivers transfer notifications over SMTP. Actor ids double
// as mail addresses when they parse as one; everything else is skipped.
package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"iprights/internal/domain/transfer"
	"iprights/internal/shared/config"
	"iprights/internal/shared/logger"
)

// TransferNotifier implements transfer.Notifier over SMTP. Failures are the
// caller's to log; the two-phase transfer flow treats notification as best
// effort either way.
type TransferNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger logger.Interface
}

// NewTransferNotifier creates an SMTP-backed transfer notifier
func NewTransferNotifier(cfg *config.EmailConfig, log logger.Interface) *TransferNotifier {
	return &TransferNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

// TransferRequested mails the proposed recipient that a handover awaits them
func (n *TransferNotifier) TransferRequested(ctx context.Context, r *transfer.Request) error {
	to := r.To().String()
	if !strings.Contains(to, "@") {
		// on-ledger principal without a mail address, nothing to deliver
		n.logger.Debugw("recipient has no mail address, skipping notification",
			"transfer_id", r.ID(), "to", to)
		return nil
	}

	subject := "Ownership transfer awaiting your decision"
	body := fmt.Sprintf(`A transfer of asset %s has been proposed to you by %s.

Transfer id: %s
Requested at: %s

Accept or cancel the request through the rights ledger. Nothing moves until
you accept.`,
		r.AssetID(), r.From(), r.ID(), r.RequestedAt().Format("2006-01-02 15:04:05 MST"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send transfer notification: %w", err)
	}

	n.logger.Infow("transfer notification sent", "transfer_id", r.ID(), "to", to)
	return nil
}
