package core

import (
	"context"
)

// sendMail dispatches through the configured mailer with the smtp
// send timeout applied. Request contexts carry no deadline of their
// own, so without this a stalled SMTP server holds the handler for
// the lifetime of the connection.
func (a *App) sendMail(ctx context.Context, to, templateID string, placeholders map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config().Smtp.SendTimeout.Duration)
	defer cancel()
	return a.Mailer().Send(ctx, to, templateID, placeholders)
}
