package usecases_port

import (
	"context"
	"catastro-service/internal/core/domain"
)

type LookupReferencePort interface {
	Execute(ctx context.Context, rawReference string) (*domain.PropertyRecord, error)
}
