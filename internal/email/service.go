// internal/email/service.go
package email

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/sendgrid/sendgrid-go"
)

// Notifier is the outbound-mail surface the offboarding workflow depends on.
// Like audit writes, notification failures are logged by callers and never
// abort the operation.
type Notifier interface {
	SendOffboardingNotice(to, orgName string, permanentDeletionAt time.Time) error
	SendCancellationNotice(to, orgName string) error
}

// NoOpNotifier discards all notifications. Used in tests and when no
// Sendgrid key is configured.
type NoOpNotifier struct{}

func (NoOpNotifier) SendOffboardingNotice(to, orgName string, permanentDeletionAt time.Time) error {
	return nil
}

func (NoOpNotifier) SendCancellationNotice(to, orgName string) error {
	return nil
}

// Service sends offboarding lifecycle notices through Sendgrid.
type Service struct {
	client *sendgrid.Client
	from   string
}

var _ Notifier = (*Service)(nil)

func NewService(apiKey, from string) *Service {
	return &Service{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

var offboardingTmpl = template.Must(template.New("offboarding").Parse(
	`Your organization {{.OrgName}} has been scheduled for removal.

All member access is suspended. Unless the offboarding is cancelled by an
administrator, your organization's data will be permanently deleted on
{{.DeletionDate}}. Compliance audit records are retained as required by law.

If this was a mistake, contact support before the deletion date.`))

var cancellationTmpl = template.Must(template.New("cancellation").Parse(
	`The scheduled removal of your organization {{.OrgName}} has been cancelled.

Member access has been restored and no data was deleted.`))

func (s *Service) SendOffboardingNotice(to, orgName string, permanentDeletionAt time.Time) error {
	body, err := render(offboardingTmpl, map[string]string{
		"OrgName":      orgName,
		"DeletionDate": permanentDeletionAt.Format("January 2, 2006"),
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Scheduled removal of %s", orgName), body)
}

func (s *Service) SendCancellationNotice(to, orgName string) error {
	body, err := render(cancellationTmpl, map[string]string{"OrgName": orgName})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Removal of %s cancelled", orgName), body)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering email template: %w", err)
	}
	return buf.String(), nil
}
