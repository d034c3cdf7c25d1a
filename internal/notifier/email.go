package notifier

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/abhigl/jobscout/internal/model"
)

// Ensure EmailNotifier implements model.Notifier.
var _ model.Notifier = (*EmailNotifier)(nil)

// EmailConfig holds SMTP settings for the email notifier.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// EmailNotifier delivers new postings as a single digest email via SMTP.
type EmailNotifier struct {
	cfg    EmailConfig
	logger *slog.Logger
}

// NewEmailNotifier creates a notifier with the given SMTP configuration.
func NewEmailNotifier(cfg EmailConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// Notify sends one email listing all new postings. No email is sent for an
// empty list.
func (n *EmailNotifier) Notify(postings []model.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", n.cfg.ToEmail)
	m.SetHeader("Subject", fmt.Sprintf("%d new job postings", len(postings)))
	m.SetBody("text/plain", renderText(postings))
	m.AddAlternative("text/html", renderHTML(postings))

	dialer := gomail.NewDialer(n.cfg.SMTPServer, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending job digest to %s: %w", n.cfg.ToEmail, err)
	}

	n.logger.Info("job digest sent", "to", n.cfg.ToEmail, "postings", len(postings))
	return nil
}

func renderText(postings []model.JobPosting) string {
	var b strings.Builder
	for _, p := range postings {
		fmt.Fprintf(&b, "%s — %s (%s)\n", p.Company, p.Title, p.Location)
		if len(p.TechStack) > 0 {
			fmt.Fprintf(&b, "  stack: %s\n", strings.Join(p.TechStack, ", "))
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "  %s\n", p.URL)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderHTML(postings []model.JobPosting) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, p := range postings {
		b.WriteString("<li>")
		if p.URL != "" {
			fmt.Fprintf(&b, `<a href="%s">%s — %s</a>`,
				html.EscapeString(p.URL), html.EscapeString(p.Company), html.EscapeString(p.Title))
		} else {
			fmt.Fprintf(&b, "%s — %s", html.EscapeString(p.Company), html.EscapeString(p.Title))
		}
		if p.Location != "" {
			fmt.Fprintf(&b, " <em>(%s)</em>", html.EscapeString(p.Location))
		}
		if len(p.TechStack) > 0 {
			fmt.Fprintf(&b, "<br><small>%s</small>", html.EscapeString(strings.Join(p.TechStack, ", ")))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
