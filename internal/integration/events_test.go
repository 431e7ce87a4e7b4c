package integration

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/denred/online-store-backend/internal/events"
	"github.com/denred/online-store-backend/internal/mail"
	"github.com/denred/online-store-backend/internal/order"
	"github.com/denred/online-store-backend/internal/testutil"
)

type channelMailer struct {
	received chan mail.OrderConfirmation
}

func (m *channelMailer) SendOrderConfirmation(ctx context.Context, msg mail.OrderConfirmation) error {
	m.received <- msg
	return nil
}

func TestOrderCreatedRoundTrip(t *testing.T) {
	requireIntegration(t)

	conn, cleanup := testutil.StartRabbitMQ(t)
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := log.New(io.Discard, "", 0)
	mailer := &channelMailer{received: make(chan mail.OrderConfirmation, 1)}
	require.NoError(t, events.StartOrderCreatedConsumer(ctx, conn, mailer, logger))

	pub, err := events.NewPublisher(conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	o := &order.Order{ID: "o1", UserID: "u1", TotalPrice: 42.50}
	require.NoError(t, pub.PublishOrderCreated(ctx, o, "olena@example.com", "Olena"))

	select {
	case msg := <-mailer.received:
		require.Equal(t, "o1", msg.OrderID)
		require.Equal(t, "olena@example.com", msg.Email)
		require.Equal(t, 42.50, msg.TotalPrice)
	case <-ctx.Done():
		t.Fatal("timed out waiting for confirmation mail")
	}
}
