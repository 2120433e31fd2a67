package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-user-registration/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject with Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

var (
	ErrEmptyJob = errors.New("email job has no recipient or body")
	ErrRender   = errors.New("email template render failed")
)

// NewWelcomeJob builds the job queued after a successful registration.
func NewWelcomeJob(to string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: templates.Welcome, Data: data}
}

// Deliver renders the job's template, if any, and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return ErrEmptyJob
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if _, ok := job.Data["Email"]; !ok {
			job.Data["Email"] = job.To
		}
		var err error
		subject, text, html, err = templates.Render(strings.ToLower(job.Template), job.Data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRender, err)
		}
	}
	if subject == "" || (text == "" && html == "") {
		return ErrEmptyJob
	}
	return s.Send(ctx, job.To, subject, text, html)
}
