package email

import (
	"context"
	"fmt"

	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional email through SendGrid. With no API key
// configured it degrades to logging the message instead of failing callers.
type Service struct {
	client   *sendgrid.Client
	from     *mail.Email
	frontend string
	log      logger.Logger
}

func New(apiKey, fromAddress, fromName, frontendURL string, log logger.Logger) *Service {
	s := &Service{
		from:     mail.NewEmail(fromName, fromAddress),
		frontend: frontendURL,
		log:      log,
	}
	if apiKey != "" {
		s.client = sendgrid.NewSendClient(apiKey)
	}
	return s
}

// SendWelcome greets a newly registered profile.
func (s *Service) SendWelcome(ctx context.Context, toAddress, toName string) error {
	subject := "Welcome to LeadCRM"
	plain := fmt.Sprintf("Hi %s,\n\nYour LeadCRM account is ready. Sign in at %s to get started.\n", toName, s.frontend)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your LeadCRM account is ready. <a href=%q>Sign in</a> to get started.</p>", toName, s.frontend)
	return s.send(ctx, toAddress, toName, subject, plain, html)
}

// SendLeadAssigned notifies a profile that a final lead was assigned to them.
func (s *Service) SendLeadAssigned(ctx context.Context, toAddress, toName string, lead *domain.FinalLead) error {
	subject := fmt.Sprintf("Lead assigned: %s", lead.CompanyName)
	plain := fmt.Sprintf("Hi %s,\n\nThe lead %q (priority %s) was assigned to you.\n%s/final-leads/%s\n",
		toName, lead.CompanyName, lead.Priority, s.frontend, lead.ID)
	html := fmt.Sprintf("<p>Hi %s,</p><p>The lead <b>%s</b> (priority %s) was assigned to you.</p><p><a href=%q>Open lead</a></p>",
		toName, lead.CompanyName, lead.Priority, fmt.Sprintf("%s/final-leads/%s", s.frontend, lead.ID))
	return s.send(ctx, toAddress, toName, subject, plain, html)
}

func (s *Service) send(ctx context.Context, toAddress, toName, subject, plain, html string) error {
	if s.client == nil {
		s.log.Info("email disabled, skipping send", "to", toAddress, "subject", subject)
		return nil
	}

	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, toAddress), plain, html)
	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}

	s.log.Info("email sent", "to", toAddress, "subject", subject)
	return nil
}
