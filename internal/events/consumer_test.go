package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/denred/online-store-backend/internal/mail"
)

type fakeMailer struct {
	sent []mail.OrderConfirmation
	err  error
}

func (f *fakeMailer) SendOrderConfirmation(ctx context.Context, msg mail.OrderConfirmation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestHandleOrderCreated(t *testing.T) {
	mailer := &fakeMailer{}
	ev := OrderCreated{
		EventType:    "OrderCreated",
		OrderID:      "o1",
		UserID:       "u1",
		Email:        "olena@example.com",
		CustomerName: "Olena",
		TotalPrice:   42.50,
		Timestamp:    time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleOrderCreated(context.Background(), mailer, body, discardLogger()))
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "olena@example.com", mailer.sent[0].Email)
	require.Equal(t, "o1", mailer.sent[0].OrderID)
	require.Equal(t, 42.50, mailer.sent[0].TotalPrice)
}

func TestHandleOrderCreated_SkipsWithoutEmail(t *testing.T) {
	mailer := &fakeMailer{}
	body, err := json.Marshal(OrderCreated{EventType: "OrderCreated", OrderID: "o1"})
	require.NoError(t, err)

	require.NoError(t, handleOrderCreated(context.Background(), mailer, body, discardLogger()))
	require.Empty(t, mailer.sent)
}

func TestHandleOrderCreated_BadPayload(t *testing.T) {
	err := handleOrderCreated(context.Background(), &fakeMailer{}, []byte("{not json"), discardLogger())
	require.Error(t, err)
}

func TestHandleOrderCreated_MailerError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("ses throttled")}
	body, err := json.Marshal(OrderCreated{OrderID: "o1", Email: "olena@example.com"})
	require.NoError(t, err)

	require.Error(t, handleOrderCreated(context.Background(), mailer, body, discardLogger()))
}
