package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/domodwyer/mailyak/v3"

	"github.com/joblane/backend/config"
)

// Template identifiers. The templates live here; callers only pick an
// id and supply placeholder values.
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
	TemplateWelcome       = "welcome"
)

// Placeholder keys recognized in templates.
const (
	PlaceholderUsername         = "username"
	PlaceholderVerificationLink = "verification_link"
	PlaceholderResetLink        = "reset_link"
)

type template struct {
	subject string
	html    string
}

var templates = map[string]template{
	TemplateVerification: {
		subject: "Email Verification",
		html: `<h1>Welcome, {{username}}</h1>
<p>Please click the link below to verify your email address:</p>
<p><a href="{{verification_link}}">Verify Email</a></p>
<p>The link is valid for 24 hours.</p>`,
	},
	TemplatePasswordReset: {
		subject: "Reset your Password",
		html: `<h1>Hello, {{username}}</h1>
<p>A password reset was requested for your account. Click the link below to choose a new password:</p>
<p><a href="{{reset_link}}">Reset Password</a></p>
<p>The link is valid for 30 minutes. If you did not request this, you can ignore this email.</p>`,
	},
	TemplateWelcome: {
		subject: "Welcome to Joblane",
		html: `<h1>Welcome aboard, {{username}}</h1>
<p>Your account is ready. Happy hunting!</p>`,
	},
}

// Sender dispatches a templated email. Implementations must honor the
// context deadline; a send is best-effort and never mutates user state.
type Sender interface {
	Send(ctx context.Context, to, templateID string, placeholders map[string]string) error
}

// Mailer sends templated emails over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	logger   *slog.Logger
}

var _ Sender = (*Mailer)(nil)

// New creates a new Mailer instance from the SMTP configuration.
func New(cfg config.Smtp, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// render substitutes {{key}} placeholders in the template body.
func render(html string, placeholders map[string]string) string {
	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(html)
}

// Send builds the email for templateID and dispatches it, bounded by
// ctx. Unknown template ids are a programming error and fail fast.
func (m *Mailer) Send(ctx context.Context, to, templateID string, placeholders map[string]string) error {
	tmpl, ok := templates[templateID]
	if !ok {
		return fmt.Errorf("unknown mail template %q", templateID)
	}

	mail := mailyak.New(fmt.Sprintf("%s:%d", m.host, m.port),
		smtp.PlainAuth("", m.username, m.password, m.host))

	mail.To(to)
	mail.From(m.from)
	mail.FromName(m.fromName)
	mail.Subject(tmpl.subject)
	mail.HTML().Set(render(tmpl.html, placeholders))

	// mailyak has no context support; run the send in a goroutine so
	// the caller's deadline still bounds the wait.
	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send %s email: %w", templateID, err)
		}
	}

	m.logger.Info("email sent", "template", templateID, "to", to)
	return nil
}
