package usecase

import (
	"context"
	"fmt"
	"sync"

	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SearchReferencesUseCase связывает весь конвейер: поиск ссылок в таблице,
// обогащение данными Catastro, фильтрацию и отправку совпавших записей в sink
type SearchReferencesUseCase struct {
	fetcher port.CatastroFetcherPort
	sink    port.ResultSinkPort
	workers int
}

// NewSearchReferencesUseCase создает новый экземпляр use case.
// workers <= 1 - строго последовательная обработка в порядке обнаружения.
func NewSearchReferencesUseCase(
	fetcher port.CatastroFetcherPort,
	sink port.ResultSinkPort,
	workers int,
) *SearchReferencesUseCase {
	if workers < 1 {
		workers = 1
	}
	return &SearchReferencesUseCase{
		fetcher: fetcher,
		sink:    sink,
		workers: workers,
	}
}

// reportBuilder собирает отчет; единственное разделяемое состояние между единицами работы
type reportBuilder struct {
	mu     sync.Mutex
	report *domain.SearchReport
}

func (b *reportBuilder) enriched() {
	b.mu.Lock()
	b.report.Enriched++
	b.mu.Unlock()
}

func (b *reportBuilder) matched(ref domain.CadastralReference, record domain.PropertyRecord) {
	b.mu.Lock()
	b.report.Matches = append(b.report.Matches, domain.MatchedProperty{Reference: ref, Record: record})
	b.mu.Unlock()
}

func (b *reportBuilder) failed(ref domain.CadastralReference, stage string, err error) {
	b.mu.Lock()
	b.report.Failures = append(b.report.Failures, domain.ReferenceFailure{
		Reference: ref,
		Stage:     stage,
		Error:     err.Error(),
	})
	b.mu.Unlock()
}

// Execute выполняет один полный запуск для пары (таблица, критерии)
func (uc *SearchReferencesUseCase) Execute(ctx context.Context, grid [][]interface{}, criteria domain.FilterCriteria) (*domain.SearchReport, error) {
	runID := uuid.New()

	baseLogger := contextkeys.LoggerFromContext(ctx)
	ucLogger := baseLogger.WithFields(port.Fields{
		"use_case": "SearchReferences",
		"run_id":   runID.String(),
	})
	ctx = contextkeys.ContextWithRunID(ctx, runID)

	refs := domain.ScanGrid(grid)

	builder := &reportBuilder{report: &domain.SearchReport{
		RunID:           runID,
		ReferencesFound: len(refs),
		Matches:         make([]domain.MatchedProperty, 0),
		Failures:        make([]domain.ReferenceFailure, 0),
	}}

	if len(refs) == 0 {
		ucLogger.Info("No valid cadastral references found", port.Fields{"rows": len(grid)})
		builder.report.Status = domain.SearchStatusNoReferences
		return builder.report, nil
	}

	ucLogger.Info("Cadastral references found, starting enrichment", port.Fields{
		"references": len(refs),
		"workers":    uc.workers,
	})

	var runErr error
	if uc.workers == 1 {
		runErr = uc.runSequential(ctx, refs, criteria, builder, ucLogger)
	} else {
		runErr = uc.runConcurrent(ctx, refs, criteria, builder, ucLogger)
	}

	report := builder.report
	if runErr != nil {
		report.Status = domain.SearchStatusCancelled
		ucLogger.Warn("Search cancelled", port.Fields{
			"enriched": report.Enriched,
			"matched":  len(report.Matches),
		})
		return report, runErr
	}

	report.Status = domain.SearchStatusCompleted
	ucLogger.Info("Search completed", port.Fields{
		"enriched": report.Enriched,
		"matched":  len(report.Matches),
		"failed":   len(report.Failures),
	})
	return report, nil
}

func (uc *SearchReferencesUseCase) runSequential(ctx context.Context, refs []domain.CadastralReference, criteria domain.FilterCriteria, builder *reportBuilder, logger port.LoggerPort) error {
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		uc.processReference(ctx, i, ref, criteria, builder, logger)
	}
	return nil
}

func (uc *SearchReferencesUseCase) runConcurrent(ctx context.Context, refs []domain.CadastralReference, criteria domain.FilterCriteria, builder *reportBuilder, logger port.LoggerPort) error {
	var g errgroup.Group
	g.SetLimit(uc.workers)

	for i, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Ошибки одной ссылки изолируются внутри processReference
			uc.processReference(ctx, i, ref, criteria, builder, logger)
			return nil
		})
	}
	_ = g.Wait()

	return ctx.Err()
}

// processReference - независимая единица работы: обогащение, фильтрация и отправка одной ссылки
func (uc *SearchReferencesUseCase) processReference(ctx context.Context, index int, ref domain.CadastralReference, criteria domain.FilterCriteria, builder *reportBuilder, logger port.LoggerPort) {
	refLogger := logger.WithFields(port.Fields{
		"reference": ref.Value,
		"format":    string(ref.Format),
		"index":     index,
	})
	refCtx := contextkeys.ContextWithLogger(ctx, refLogger)

	record, err := uc.fetcher.FetchPropertyRecord(refCtx, ref)
	if err != nil {
		refLogger.Error("Failed to enrich reference, skipping", err, nil)
		builder.failed(ref, domain.StageEnrichment, fmt.Errorf("failed to fetch property record: %w", err))
		return
	}
	builder.enriched()

	verdict := criteria.Evaluate(*record)
	if !verdict.Passed() {
		refLogger.Debug("Record rejected by filters", port.Fields{
			"class_ok":    verdict.Class,
			"area_ok":     verdict.Area,
			"location_ok": verdict.Location,
			"year_ok":     verdict.Year,
		})
		return
	}

	if err := uc.sink.Accept(refCtx, ref, *record); err != nil {
		refLogger.Error("Failed to dispatch matched record", err, nil)
		builder.failed(ref, domain.StageDispatch, fmt.Errorf("failed to dispatch matched record: %w", err))
		return
	}
	builder.matched(ref, *record)
	refLogger.Info("Record matched and dispatched", nil)
}
