package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/aether-shop/internal/domain"
)

// SettlementMessage тело события об успешной оплате заказа.
type SettlementMessage struct {
	PaymentID      int64     `json:"paymentID"`
	OrderDetailsID int64     `json:"orderDetailsID"`
	UserID         int64     `json:"userID"`
	AccountID      int64     `json:"accountID"`
	Quantity       int64     `json:"quantity"`
	Price          string    `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SettlementPublisher пишет события об оплатах в kafka. Ключ сообщения - id
// пользователя, так события одного пользователя попадают в одну партицию и
// сохраняют порядок.
type SettlementPublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewSettlementPublisher(brokers []string, topic string, l *logrus.Logger) *SettlementPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	l.WithFields(logrus.Fields{"brokers": brokers, "topic": topic}).
		Info("kafka settlement publisher initialized")

	return &SettlementPublisher{
		writer: writer,
		logger: l,
	}
}

func (p *SettlementPublisher) PublishSettlement(ctx context.Context, payment *domain.Payment) error {
	payload, marshalErr := json.Marshal(SettlementMessage{
		PaymentID:      payment.ID,
		OrderDetailsID: payment.OrderDetailsID,
		UserID:         payment.UserID,
		AccountID:      payment.AccountID,
		Quantity:       payment.Quantity,
		Price:          payment.Price.String(),
		CreatedAt:      payment.CreatedAt,
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal settlement message: %s", marshalErr.Error())
	}

	writeErr := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(payment.UserID, 10)),
		Value: payload,
	})
	if writeErr != nil {
		return fmt.Errorf("write settlement message: %w", writeErr)
	}
	return nil
}

func (p *SettlementPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
