package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/denred/online-store-backend/internal/mail"
)

// StartOrderCreatedConsumer sends a confirmation email for every created
// order. It returns after wiring up the goroutine; cancel ctx to stop it.
func StartOrderCreatedConsumer(ctx context.Context, conn *amqp.Connection, mailer mail.Mailer, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		OrderCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(
		OrderCreatedQueue,
		"shop-backend", // consumer tag
		false,          // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Println("stopping order.created consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Println("messages channel closed")
					return
				}

				if err := handleOrderCreated(ctx, mailer, msg.Body, logger); err != nil {
					logger.Printf("handle message error: %v", err)
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func handleOrderCreated(ctx context.Context, mailer mail.Mailer, body []byte, logger *log.Logger) error {
	var ev OrderCreated
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal OrderCreated: %w", err)
	}

	if ev.Email == "" {
		logger.Printf("order %s has no email, skipping confirmation", ev.OrderID)
		return nil
	}

	err := mailer.SendOrderConfirmation(ctx, mail.OrderConfirmation{
		Email:        ev.Email,
		CustomerName: ev.CustomerName,
		OrderID:      ev.OrderID,
		TotalPrice:   ev.TotalPrice,
	})
	if err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", ev.OrderID, err)
	}

	logger.Printf("sent confirmation for order %s to %s", ev.OrderID, ev.Email)
	return nil
}
