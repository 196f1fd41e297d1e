package services

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"gopkg.in/gomail.v2"
)

type NotificationKind string

const (
	NotificationContact         NotificationKind = "contact_notification"
	NotificationDemoConfirmed   NotificationKind = "demo_confirmation"
	NotificationDemoRescheduled NotificationKind = "demo_rescheduled"
	NotificationDemoReminder    NotificationKind = "demo_reminder"
)

// Notification is one queued email job. Lead is a snapshot taken at enqueue time.
type Notification struct {
	Kind    NotificationKind
	Lead    models.Lead
	OldDate string
	OldTime string
	Reason  string
}

// MailSender delivers a rendered HTML message
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through gomail
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *models.Config) *SMTPMailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}
}

// NewMailSender returns an SMTP sender, or a nil interface when SMTP credentials are missing
func NewMailSender(cfg *models.Config) MailSender {
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil
	}
	return NewSMTPMailer(cfg)
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "contact_notification"}}<h2>New inquiry from {{.Lead.FullName}}</h2>
<p><strong>Email:</strong> {{.Lead.Email}}</p>
{{if .Lead.Phone}}<p><strong>Phone:</strong> {{.Lead.Phone}}</p>{{end}}
<p><strong>Business:</strong> {{.Lead.BusinessInfo}}</p>
<p><strong>Inquiry type:</strong> {{.Lead.InquiryType}}</p>
{{if .Lead.Message}}<p><strong>Message:</strong> {{.Lead.Message}}</p>{{end}}{{end}}
{{define "demo_confirmation"}}<h2>Hi {{.Lead.FirstName}}, your demo is booked</h2>
<p>We will meet on <strong>{{.Date}}</strong> at <strong>{{.Lead.DemoDetails.PreferredTime}}</strong> ({{.Lead.DemoDetails.Timezone}}).</p>
<p>Demo: {{.Lead.DemoDetails.DemoType}}</p>
<p>Our team will send a calendar invite with the meeting link shortly.</p>{{end}}
{{define "demo_rescheduled"}}<h2>Hi {{.Lead.FirstName}}, your demo has been rescheduled</h2>
<p>Previous slot: {{.OldDate}} {{.OldTime}}</p>
<p>New slot: <strong>{{.Date}}</strong> at <strong>{{.Lead.DemoDetails.PreferredTime}}</strong> ({{.Lead.DemoDetails.Timezone}}).</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}{{end}}
{{define "demo_reminder"}}<h2>Hi {{.Lead.FirstName}}, your demo starts soon</h2>
<p>Your {{.Lead.DemoDetails.DemoType}} demo is scheduled for <strong>{{.Date}}</strong> at <strong>{{.Lead.DemoDetails.PreferredTime}}</strong> ({{.Lead.DemoDetails.Timezone}}).</p>{{end}}
`))

type mailView struct {
	Notification
	Date string
}

// NotificationDispatcher sends notifications from a bounded queue on a single worker goroutine.
// Enqueue never blocks and delivery failures are only logged.
type NotificationDispatcher struct {
	config  *models.Config
	sender  MailSender
	logger  logger.Logger
	queue   chan Notification
	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewNotificationDispatcher returns a dispatcher; a nil sender disables delivery
func NewNotificationDispatcher(cfg *models.Config, sender MailSender, logger logger.Logger) *NotificationDispatcher {
	size := cfg.NotificationQueueSize
	if size <= 0 {
		size = 100
	}
	return &NotificationDispatcher{
		config: cfg,
		sender: sender,
		logger: logger,
		queue:  make(chan Notification, size),
	}
}

func (d *NotificationDispatcher) Enabled() bool {
	return d.sender != nil
}

// Start launches the worker goroutine. It is a no-op when already started.
func (d *NotificationDispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true
	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue and waits for queued jobs to drain
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

// Enqueue schedules n for delivery and reports whether it was accepted
func (d *NotificationDispatcher) Enqueue(n Notification) bool {
	if !d.Enabled() {
		d.logger.Debugf("Email not configured, skipping %s for lead %s", n.Kind, n.Lead.ID)
		RecordNotification(n.Kind, "skipped")
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		RecordNotification(n.Kind, "dropped")
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.logger.Warnf("Notification queue full, dropping %s for lead %s", n.Kind, n.Lead.ID)
		RecordNotification(n.Kind, "dropped")
		return false
	}
}

func (d *NotificationDispatcher) run() {
	defer d.wg.Done()
	for n := range d.queue {
		if err := d.deliver(n); err != nil {
			d.logger.Errorf("Failed to send %s for lead %s: %v", n.Kind, n.Lead.ID, err)
			RecordNotification(n.Kind, "failed")
			continue
		}
		d.logger.Infof("Sent %s for lead %s", n.Kind, n.Lead.ID)
		RecordNotification(n.Kind, "sent")
	}
}

func (d *NotificationDispatcher) deliver(n Notification) error {
	to, subject := d.addressing(n)
	if to == "" {
		return fmt.Errorf("no recipient for %s", n.Kind)
	}

	body, err := renderNotification(n)
	if err != nil {
		return err
	}
	return d.sender.Send(to, subject, body)
}

func (d *NotificationDispatcher) addressing(n Notification) (string, string) {
	switch n.Kind {
	case NotificationContact:
		to := d.config.NotifyEmail
		if to == "" {
			to = d.config.SMTPUser
		}
		return to, "New inquiry from " + n.Lead.FullName()
	case NotificationDemoConfirmed:
		return n.Lead.Email, "Your AI Hub demo is booked"
	case NotificationDemoRescheduled:
		return n.Lead.Email, "Your AI Hub demo has been rescheduled"
	case NotificationDemoReminder:
		return n.Lead.Email, "Reminder: your AI Hub demo starts soon"
	default:
		return "", ""
	}
}

func renderNotification(n Notification) (string, error) {
	view := mailView{Notification: n}
	if n.Lead.DemoDetails != nil {
		view.Date = n.Lead.DemoDetails.PreferredDate.UTC().Format(models.DateLayout)
	} else if n.Kind != NotificationContact {
		return "", fmt.Errorf("%s requires demo details", n.Kind)
	}

	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, string(n.Kind), &view); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", n.Kind, err)
	}
	return body.String(), nil
}
