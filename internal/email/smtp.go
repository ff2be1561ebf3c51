package email

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/mmynk/lunchpoll/internal/models"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// BaseURL is the public address used to build join links.
	BaseURL string
}

// SMTPSender sends invitations through an SMTP relay.
type SMTPSender struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an SMTPSender for the given relay.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, sendMail: smtp.SendMail}
}

// Send renders the invitation and hands it to the relay.
func (s *SMTPSender) Send(ctx context.Context, inv models.Invitation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := Render(s.cfg.BaseURL, inv)
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := s.sendMail(addr, auth, s.cfg.From, []string{msg.To}, s.format(msg)); err != nil {
		return fmt.Errorf("failed to send invitation to %s: %w", msg.To, err)
	}

	slog.Debug("Invitation email sent", "to", msg.To, "group_id", inv.GroupID)
	return nil
}

func (s *SMTPSender) format(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// LogSender logs invitations instead of delivering them. Used when no SMTP
// relay is configured.
type LogSender struct {
	BaseURL string
	Logger  *slog.Logger
}

// Send logs the join link.
func (s *LogSender) Send(ctx context.Context, inv models.Invitation) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Invitation email (not delivered)",
		"to", inv.Email,
		"group_id", inv.GroupID,
		"join_url", JoinURL(s.BaseURL, inv),
	)
	return nil
}
