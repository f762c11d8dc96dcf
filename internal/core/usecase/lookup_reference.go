package usecase

import (
	"context"
	"fmt"

	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
)

// LookupReferenceUseCase обогащает одну ссылку без фильтрации
type LookupReferenceUseCase struct {
	fetcher port.CatastroFetcherPort
}

func NewLookupReferenceUseCase(fetcher port.CatastroFetcherPort) *LookupReferenceUseCase {
	return &LookupReferenceUseCase{fetcher: fetcher}
}

// Execute возвращает domain.ErrNotAReference, если строка не является кадастровой ссылкой
func (uc *LookupReferenceUseCase) Execute(ctx context.Context, rawReference string) (*domain.PropertyRecord, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LookupReference",
	})

	ref, err := domain.ParseReference(rawReference)
	if err != nil {
		ucLogger.Debug("Rejected lookup of a non-reference value", port.Fields{"value": rawReference})
		return nil, err
	}

	record, err := uc.fetcher.FetchPropertyRecord(contextkeys.ContextWithLogger(ctx, ucLogger), ref)
	if err != nil {
		ucLogger.Error("Failed to fetch property record", err, port.Fields{"reference": ref.Value})
		return nil, fmt.Errorf("failed to fetch property record for %s: %w", ref.Value, err)
	}

	return record, nil
}
