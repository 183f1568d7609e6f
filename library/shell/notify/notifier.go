package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

const (
	logMsgNoticeSent    = "notify: reservation ready notice sent"
	logMsgNoticeFailed  = "notify: sending reservation ready notice failed"
	logMsgNoticeDropped = "notify: queue full, reservation ready notice dropped"
	logMsgNoticeLogged  = "notify: reservation ready"
	logAttrReaderID     = "reader_id"
	logAttrEmail        = "email"
	logAttrBookTitle    = "book_title"
	logAttrExpiresAt    = "expires_at"
	logAttrError        = "error"

	defaultQueueSize = 64
)

// ErrEmptySender is returned when a MailNotifier is built without From address.
var ErrEmptySender = errors.New("mail sender address must not be empty")

// ReservationReadyNotice describes a held copy waiting for pickup.
type ReservationReadyNotice struct {
	ReaderID  string
	Email     string
	Name      string
	BookTitle string
	ReadyAt   time.Time
	ExpiresAt time.Time
}

// Notifier delivers notices. Delivery failures are logged, never returned.
type Notifier interface {
	NotifyReservationReady(ctx context.Context, notice ReservationReadyNotice)
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogNotifier only logs notices. It is used when no SMTP server is configured.
type LogNotifier struct {
	logger Logger
}

// NewLogNotifier returns a LogNotifier.
func NewLogNotifier(logger Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (n LogNotifier) NotifyReservationReady(_ context.Context, notice ReservationReadyNotice) {
	if n.logger == nil {
		return
	}

	n.logger.Info(logMsgNoticeLogged,
		logAttrReaderID, notice.ReaderID,
		logAttrEmail, notice.Email,
		logAttrBookTitle, notice.BookTitle,
		logAttrExpiresAt, notice.ExpiresAt,
	)
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier queues notices and sends them as mails from Run.
type MailNotifier struct {
	sender Sender
	from   string
	queue  chan ReservationReadyNotice
	logger Logger
}

// NewSMTPSender returns a gomail dialer. Port 465 uses implicit TLS.
func NewSMTPSender(host string, port int, user string, pass string) *gomail.Dialer {
	dialer := gomail.NewDialer(host, port, user, pass)
	if port == 465 {
		dialer.SSL = true
	}

	return dialer
}

// NewMailNotifier returns a MailNotifier sending through sender.
func NewMailNotifier(sender Sender, from string, logger Logger) (*MailNotifier, error) {
	if strings.TrimSpace(from) == "" {
		return nil, ErrEmptySender
	}

	return &MailNotifier{
		sender: sender,
		from:   from,
		queue:  make(chan ReservationReadyNotice, defaultQueueSize),
		logger: logger,
	}, nil
}

// NotifyReservationReady queues the notice without blocking.
func (n *MailNotifier) NotifyReservationReady(_ context.Context, notice ReservationReadyNotice) {
	if notice.Email == "" {
		return
	}

	select {
	case n.queue <- notice:
	default:
		n.warn(logMsgNoticeDropped, logAttrReaderID, notice.ReaderID)
	}
}

// Run sends queued notices until ctx is done. Notices still queued then are sent before returning.
func (n *MailNotifier) Run(ctx context.Context) error {
	for {
		select {
		case notice := <-n.queue:
			n.send(notice)
		case <-ctx.Done():
			n.drain()
			return nil
		}
	}
}

func (n *MailNotifier) drain() {
	for {
		select {
		case notice := <-n.queue:
			n.send(notice)
		default:
			return
		}
	}
}

func (n *MailNotifier) send(notice ReservationReadyNotice) {
	if err := n.sender.DialAndSend(n.buildMessage(notice)); err != nil {
		if n.logger != nil {
			n.logger.Error(logMsgNoticeFailed, logAttrReaderID, notice.ReaderID, logAttrError, err.Error())
		}
		return
	}

	if n.logger != nil {
		n.logger.Info(logMsgNoticeSent, logAttrReaderID, notice.ReaderID, logAttrBookTitle, notice.BookTitle)
	}
}

func (n *MailNotifier) buildMessage(notice ReservationReadyNotice) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetAddressHeader("To", notice.Email, notice.Name)
	m.SetHeader("Subject", fmt.Sprintf("Tu reserva de \"%s\" está disponible", notice.BookTitle))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nEl libro \"%s\" que reservaste ya está disponible.\nPuedes recogerlo hasta el %s.\n",
		notice.Name,
		notice.BookTitle,
		notice.ExpiresAt.Format("02/01/2006 15:04"),
	))

	return m
}

func (n *MailNotifier) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}
