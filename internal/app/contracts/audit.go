package contracts

import (
	"context"
	"encounter-service/internal/app/models"
)

type AuditEventPublisher interface {
	PublishEncounterSubmitted(ctx context.Context, event models.AuditEvent) error
}
