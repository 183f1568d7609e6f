package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/AntonStoeckl/biblioteca/library/shell/notify"
)

type senderSpy struct {
	mu       sync.Mutex
	messages []*gomail.Message
	err      error
}

func (s *senderSpy) DialAndSend(m ...*gomail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m...)
	return s.err
}

func (s *senderSpy) sent() []*gomail.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*gomail.Message(nil), s.messages...)
}

func givenNotice() notify.ReservationReadyNotice {
	return notify.ReservationReadyNotice{
		ReaderID:  "reader-1",
		Email:     "ana@example.org",
		Name:      "Ana Ruiz",
		BookTitle: "Rayuela",
		ReadyAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		ExpiresAt: time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	}
}

func Test_MailNotifier_SendsQueuedNoticesOnShutdown(t *testing.T) {
	// arrange
	sender := &senderSpy{}
	notifier, err := notify.NewMailNotifier(sender, "biblioteca@example.org", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	notifier.NotifyReservationReady(ctx, givenNotice())
	cancel()

	// act
	err = notifier.Run(ctx)

	// assert
	require.NoError(t, err)
	messages := sender.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{`"Ana Ruiz" <ana@example.org>`}, messages[0].GetHeader("To"))
	assert.Equal(t, []string{"biblioteca@example.org"}, messages[0].GetHeader("From"))
	assert.Contains(t, messages[0].GetHeader("Subject")[0], "Rayuela")
}

func Test_MailNotifier_SkipsNoticesWithoutEmail(t *testing.T) {
	sender := &senderSpy{}
	notifier, err := notify.NewMailNotifier(sender, "biblioteca@example.org", nil)
	require.NoError(t, err)

	notice := givenNotice()
	notice.Email = ""
	notifier.NotifyReservationReady(context.Background(), notice)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, notifier.Run(ctx))

	assert.Empty(t, sender.sent())
}

func Test_MailNotifier_LogsDeliveryFailures(t *testing.T) {
	// arrange
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	sender := &senderSpy{err: errors.New("connection refused")}
	notifier, err := notify.NewMailNotifier(sender, "biblioteca@example.org", logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	notifier.NotifyReservationReady(ctx, givenNotice())
	cancel()

	// act
	require.NoError(t, notifier.Run(ctx))

	// assert
	assert.Contains(t, buf.String(), "connection refused")
}

func Test_NewMailNotifier_RequiresSender(t *testing.T) {
	_, err := notify.NewMailNotifier(&senderSpy{}, " ", nil)

	assert.ErrorIs(t, err, notify.ErrEmptySender)
}

func Test_LogNotifier_LogsNotice(t *testing.T) {
	buf := new(bytes.Buffer)
	notify.NewLogNotifier(slog.New(slog.NewTextHandler(buf, nil))).NotifyReservationReady(context.Background(), givenNotice())

	assert.Contains(t, buf.String(), "reader_id=reader-1")
	assert.Contains(t, buf.String(), "Rayuela")
}
