package port

import (
	"context"
	"catastro-service/internal/core/domain"
)

// ResultSinkPort принимает записи, прошедшие фильтры.
// Реализации должны допускать конкурентные вызовы Accept.
type ResultSinkPort interface {
	Accept(ctx context.Context, ref domain.CadastralReference, record domain.PropertyRecord) error
}
