package rabbitmq

import (
	"time"

	"catastro-service/internal/adapters/catastrolinks"
	"catastro-service/internal/core/domain"

	"github.com/google/uuid"
)

// MatchedPropertyEventDTO - тело сообщения MatchedPropertyEvent.
// Неизвестные числовые значения передаются как null.
type MatchedPropertyEventDTO struct {
	RunID     uuid.UUID `json:"run_id"`
	Reference string    `json:"reference"`
	Format    string    `json:"format"`

	ConstructionYear *float64 `json:"construction_year"`
	BuiltArea        *float64 `json:"built_area"`
	Location         string   `json:"location"`
	PropertyClass    string   `json:"property_class"`

	Province   string `json:"province,omitempty"`
	City       string `json:"city,omitempty"`
	District   string `json:"district,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`

	Links     catastrolinks.Links `json:"links"`
	MatchedAt time.Time           `json:"matched_at"`
}

func measureToDTO(m domain.Measure) *float64 {
	if !m.Known {
		return nil
	}
	v := m.Value
	return &v
}

func toMatchedPropertyEventDTO(runID uuid.UUID, ref domain.CadastralReference, record domain.PropertyRecord, matchedAt time.Time) MatchedPropertyEventDTO {
	return MatchedPropertyEventDTO{
		RunID:            runID,
		Reference:        ref.Value,
		Format:           string(ref.Format),
		ConstructionYear: measureToDTO(record.ConstructionYear),
		BuiltArea:        measureToDTO(record.BuiltArea),
		Location:         record.Location,
		PropertyClass:    record.PropertyClass,
		Province:         record.Province,
		City:             record.City,
		District:         record.District,
		PostalCode:       record.PostalCode,
		Links:            catastrolinks.DeriveLinks(ref),
		MatchedAt:        matchedAt.UTC(),
	}
}
