package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"catastro-service/internal/adapters/catastrolinks"
	"catastro-service/internal/core/domain"
)

// ConsoleSink печатает совпавшие объекты в читаемом виде
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Accept(_ context.Context, ref domain.CadastralReference, record domain.PropertyRecord) error {
	links := catastrolinks.DeriveLinks(ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintf(s.w,
		"%s (%s)\n  class: %s\n  built area: %s\n  year: %s\n  location: %s\n  province: %s  city: %s  district: %s  postal code: %s\n  facade: %s\n  report: %s\n  map: %s\n",
		ref.Value, ref.Format,
		record.PropertyClass,
		record.BuiltArea,
		record.ConstructionYear,
		record.Location,
		orDash(record.Province), orDash(record.City), orDash(record.District), orDash(record.PostalCode),
		links.FacadeImage,
		links.ReportPDF,
		links.Map,
	)
	if err != nil {
		return fmt.Errorf("failed to print matched property: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
