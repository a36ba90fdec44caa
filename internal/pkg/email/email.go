package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/hrcore/attendance-backend-go/internal/config"
	"github.com/hrcore/attendance-backend-go/internal/domain/leave"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Notifier sends correction-request decision emails.
type Notifier interface {
	NotifyRequestDecision(ctx context.Context, req leave.CorrectionRequest) error
}

type notifierImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template

	// resolveAddress maps a user ID to an email address. Directory data lives
	// outside this service, so the mapping is injected.
	resolveAddress func(userID string) (string, bool)
}

// NewNotifier creates the SMTP notifier. With an empty SMTP host it stays
// functional but skips every send with a warning.
func NewNotifier(cfg config.SMTPConfig, resolveAddress func(userID string) (string, bool)) (Notifier, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &notifierImpl{
		cfg:            cfg,
		templates:      tmpl,
		resolveAddress: resolveAddress,
	}, nil
}

type decisionEmailData struct {
	UserName        string
	Date            string
	RequestedStatus string
	Decision        string
	Remarks         string
}

// NotifyRequestDecision sends the approval/rejection email for a decided
// request.
func (s *notifierImpl) NotifyRequestDecision(_ context.Context, req leave.CorrectionRequest) error {
	to, ok := s.resolveAddress(req.UserID)
	if !ok {
		slog.Warn("no email address for user, skipping notification", "user_id", req.UserID)
		return nil
	}

	data := decisionEmailData{
		UserName:        req.UserID,
		Date:            req.Date,
		RequestedStatus: string(req.RequestedStatus),
		Decision:        string(req.Status),
	}
	if req.UserName != nil {
		data.UserName = *req.UserName
	}
	if req.PartnerRemarks != nil {
		data.Remarks = *req.PartnerRemarks
	}
	if req.HRRemarks != nil {
		data.Remarks = *req.HRRemarks
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "request_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Attendance correction for %s: %s", req.Date, req.Status)
	return s.sendHTML(to, subject, body.String())
}

func (s *notifierImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}
		lastErr = err
		slog.Warn("email send failed, retrying", "to", to, "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
