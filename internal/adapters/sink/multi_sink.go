package sink

import (
	"context"
	"errors"

	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
)

// MultiSink передает запись в каждый sink; ошибки объединяются, остальные sinks все равно вызываются
type MultiSink struct {
	sinks []port.ResultSinkPort
}

func NewMultiSink(sinks ...port.ResultSinkPort) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Accept(ctx context.Context, ref domain.CadastralReference, record domain.PropertyRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Accept(ctx, ref, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoopSink ничего не делает: результат возвращается только в отчете
type NoopSink struct{}

func (NoopSink) Accept(context.Context, domain.CadastralReference, domain.PropertyRecord) error {
	return nil
}
