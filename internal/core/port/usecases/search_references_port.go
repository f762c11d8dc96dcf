package usecases_port

import (
	"context"
	"catastro-service/internal/core/domain"
)

type SearchReferencesPort interface {
	Execute(ctx context.Context, grid [][]interface{}, criteria domain.FilterCriteria) (*domain.SearchReport, error)
}
