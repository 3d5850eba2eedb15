package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
)

// Decision is the outcome of a membership application
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDenied   Decision = "DENIED"
)

// Recipient identifies who a message goes to
type Recipient struct {
	Email string
	Name  string
}

// Notifier defines the interface for outgoing member notifications
type Notifier interface {
	SendMembershipDecision(ctx context.Context, to Recipient, decision Decision) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Public site URL used in message links
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
	send   sendFunc
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		config: config,
		logger: logger,
	}
	if config.UseTLS {
		n.send = n.sendTLS
	} else {
		n.send = smtp.SendMail
	}
	return n
}

var decisionTemplate = template.Must(template.New("decision").Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello {{.Name}},</p>
		{{if .Approved}}
		<p>Your membership application has been <strong>approved</strong>. Welcome to the association!</p>
		<p>You can now register for upcoming events as a member at <a href="{{.EventsURL}}">{{.EventsURL}}</a>.</p>
		{{else}}
		<p>Thank you for your interest. Unfortunately your membership application was not approved at this time.</p>
		<p>If you believe this is a mistake, reply to this message and our board will review it.</p>
		{{end}}
		<p>Best regards,<br>The Nursing Association</p>
	</div>
</body>
</html>`))

// SendMembershipDecision tells an applicant whether their membership was approved
func (s *SMTPNotifier) SendMembershipDecision(ctx context.Context, to Recipient, decision Decision) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", to.Email).
			Str("decision", string(decision)).
			Msg("SMTP credentials not configured - membership decision email not sent")
		return nil
	}

	subject := "Your membership application"
	if decision == DecisionApproved {
		subject = "Your membership has been approved"
	}

	var body bytes.Buffer
	err := decisionTemplate.Execute(&body, map[string]interface{}{
		"Name":      to.Name,
		"Approved":  decision == DecisionApproved,
		"EventsURL": s.config.BaseURL + "/events",
	})
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	return s.sendHTMLEmail(to.Email, subject, body.String())
}

func (s *SMTPNotifier) buildMessage(toEmail, subject, htmlBody string) []byte {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, headers[k])
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

func (s *SMTPNotifier) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	err := s.send(serverAddress, auth, s.config.FromEmail, []string{toEmail}, s.buildMessage(toEmail, subject, htmlBody))
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

// sendTLS talks implicit TLS (port 465 style) to the SMTP server
func (s *SMTPNotifier) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
