package auditqueue

import (
	"context"
	"encounter-service/internal/app/contracts"
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/exceptions"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// Submission audit events land here; the DLQ catches messages the
	// downstream audit consumer rejects.
	StandardQueueName   = "encounter_audit_queue"
	DeadLetterQueueName = "encounter_audit_dlq"
)

// Service publishes submission audit events to RabbitMQ.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService opens a channel, declares the durable queues, and enables
// publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (contracts.AuditEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		StandardQueueName, // name
		true,              // durable
		false,             // autoDelete
		false,             // exclusive
		false,             // noWait
		nil,               // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

// PublishEncounterSubmitted publishes the audit event with persistence and
// waits for the broker confirm.
func (s *Service) PublishEncounterSubmitted(ctx context.Context, event models.AuditEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("AuditQueue.PublishEncounterSubmitted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEncounterIDKey, event.EncounterID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", StandardQueueName, false, false, msg); err != nil {
		return exceptions.ErrAuditPublish(err)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrAuditPublish(fmt.Errorf("message not confirmed"))
		}
	case <-ctx.Done():
		return exceptions.ErrAuditPublish(ctx.Err())
	}
	return nil
}
