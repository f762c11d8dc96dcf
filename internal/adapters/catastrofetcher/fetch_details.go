package catastrofetcher

import (
	"context"
	"fmt"

	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// FetchPropertyRecord выполняет один GET к реестру и преобразует ответ в доменную запись
func (a *CatastroFetcherAdapter) FetchPropertyRecord(ctx context.Context, ref domain.CadastralReference) (*domain.PropertyRecord, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	fetchLogger := logger.WithFields(port.Fields{"component": "CatastroFetcherAdapter(FetchPropertyRecord)"})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Клон разделяет HTTP-бэкенд и лимиты родителя, но не его колбэки
	collector := a.collector.Clone()
	collector.Context = ctx
	extensions.RandomUserAgent(collector)

	var record *domain.PropertyRecord
	var criticalError error

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "application/json")
		fetchLogger.Debug("Making request to Catastro", port.Fields{
			"url":       r.URL.String(),
			"reference": ref.Value,
		})
	})

	// OnResponse сработает, когда мы получим успешный ответ от API
	collector.OnResponse(func(r *colly.Response) {
		if criticalError != nil || record != nil {
			return
		}

		rec, err := toDomainRecord(r.Body, ref, fetchLogger)
		if err != nil {
			fetchLogger.Error("Failed to map response to domain record", err, port.Fields{"reference": ref.Value})
			criticalError = fmt.Errorf("FetchPropertyRecord: failed to map response for %s: %w", ref.Value, err)
			return
		}
		record = rec
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchLogger.Error("Failed to fetch property record", err, port.Fields{
			"reference": ref.Value,
			"url":       r.Request.URL.String(),
			"status":    r.StatusCode,
		})
		criticalError = fmt.Errorf("FetchPropertyRecord: request for %s failed with status %d: %w", ref.Value, r.StatusCode, err)
	})

	visitErr := collector.Visit(a.requestURL(ref.Value))
	collector.Wait()

	if criticalError != nil {
		return nil, criticalError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if visitErr != nil {
		return nil, fmt.Errorf("FetchPropertyRecord: failed to visit catastro for %s: %w", ref.Value, visitErr)
	}
	if record == nil {
		return nil, fmt.Errorf("FetchPropertyRecord: no response received for %s", ref.Value)
	}

	return record, nil
}
