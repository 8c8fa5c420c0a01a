package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"strconv"

	gomail "github.com/wneessen/go-mail"
)

// NewUserInfo is the payload for the back-office alert sent when someone
// registers.
type NewUserInfo struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Mobile    string
}

type Mailer interface {
	SendWelcome(ctx context.Context, to, firstName string) error
	SendAdminNewUser(ctx context.Context, info NewUserInfo) error
	SendAccountActivated(ctx context.Context, to, firstName string) error
	SendAccountDeactivated(ctx context.Context, to, firstName string) error
}

type smtpMailer struct {
	client     *gomail.Client
	from       string
	adminEmail string
	baseURL    string
}

// NewSMTPMailer builds a mailer from the SMTP_* environment, mirroring the
// transporter configuration the web app used.
func NewSMTPMailer() (Mailer, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, errors.New("SMTP_HOST is not set")
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(os.Getenv("SMTP_USER")),
		gomail.WithPassword(os.Getenv("SMTP_PASS")),
	}
	if os.Getenv("SMTP_SECURE") == "true" {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@okayr.ir"
	}
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "https://app.okayr.ir"
	}

	return &smtpMailer{
		client:     client,
		from:       from,
		adminEmail: adminEmail,
		baseURL:    baseURL,
	}, nil
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body, replyTo string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Okayr", m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	if replyTo != "" {
		if err := msg.ReplyTo(replyTo); err != nil {
			return err
		}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *smtpMailer) render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *smtpMailer) SendWelcome(ctx context.Context, to, firstName string) error {
	body, err := m.render(welcomeTmpl, map[string]string{
		"FirstName": firstName,
		"LoginURL":  m.baseURL + "/login",
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "🎉 ثبت‌نام شما در Okayr با موفقیت انجام شد", body, "")
}

func (m *smtpMailer) SendAdminNewUser(ctx context.Context, info NewUserInfo) error {
	body, err := m.render(adminNewUserTmpl, map[string]string{
		"FirstName": info.FirstName,
		"LastName":  info.LastName,
		"Email":     info.Email,
		"Username":  info.Username,
		"Mobile":    info.Mobile,
		"AdminURL":  m.baseURL + "/admin",
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("🔔 کاربر جدید: %s %s ثبت‌نام کرد", info.FirstName, info.LastName)
	return m.send(ctx, m.adminEmail, subject, body, info.Email)
}

func (m *smtpMailer) SendAccountActivated(ctx context.Context, to, firstName string) error {
	body, err := m.render(activatedTmpl, map[string]string{
		"FirstName": firstName,
		"LoginURL":  m.baseURL + "/login",
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "🎉 حساب کاربری شما در Okayr فعال شد!", body, "")
}

func (m *smtpMailer) SendAccountDeactivated(ctx context.Context, to, firstName string) error {
	body, err := m.render(deactivatedTmpl, map[string]string{
		"FirstName": firstName,
	})
	if err != nil {
		return err
	}
	return m.send(ctx, to, "⚠️ وضعیت حساب کاربری شما در Okayr", body, "")
}

type noopMailer struct{}

// NewNoopMailer keeps registration working in environments without SMTP
// credentials (local development, tests).
func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) SendWelcome(context.Context, string, string) error            { return nil }
func (noopMailer) SendAdminNewUser(context.Context, NewUserInfo) error          { return nil }
func (noopMailer) SendAccountActivated(context.Context, string, string) error   { return nil }
func (noopMailer) SendAccountDeactivated(context.Context, string, string) error { return nil }
