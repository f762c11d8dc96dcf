package rest

import (
	"catastro-service/internal/adapters/catastrolinks"
	"catastro-service/internal/core/domain"
)

// PropertyRecordDTO - запись в ответе API. Неизвестные значения отдаются строкой "unknown".
type PropertyRecordDTO struct {
	Reference        string              `json:"reference"`
	Format           string              `json:"format"`
	ConstructionYear interface{}         `json:"construction_year"`
	BuiltArea        interface{}         `json:"built_area"`
	Location         string              `json:"location"`
	PropertyClass    string              `json:"property_class"`
	Province         string              `json:"province,omitempty"`
	City             string              `json:"city,omitempty"`
	District         string              `json:"district,omitempty"`
	PostalCode       string              `json:"postal_code,omitempty"`
	Links            catastrolinks.Links `json:"links"`
}

type ReferenceFailureDTO struct {
	Reference string `json:"reference"`
	Stage     string `json:"stage"`
	Error     string `json:"error"`
}

// SearchReportDTO - ответ POST /api/v1/searches
type SearchReportDTO struct {
	RunID           string                `json:"run_id"`
	Status          string                `json:"status"`
	ReferencesFound int                   `json:"references_found"`
	Enriched        int                   `json:"enriched"`
	MatchedCount    int                   `json:"matched_count"`
	Matches         []PropertyRecordDTO   `json:"matches"`
	Failures        []ReferenceFailureDTO `json:"failures"`
}

func measureToDTO(m domain.Measure) interface{} {
	if !m.Known {
		return domain.Unknown
	}
	return m.Value
}

func toPropertyRecordDTO(record domain.PropertyRecord) PropertyRecordDTO {
	return PropertyRecordDTO{
		Reference:        record.Reference.Value,
		Format:           string(record.Reference.Format),
		ConstructionYear: measureToDTO(record.ConstructionYear),
		BuiltArea:        measureToDTO(record.BuiltArea),
		Location:         record.Location,
		PropertyClass:    record.PropertyClass,
		Province:         record.Province,
		City:             record.City,
		District:         record.District,
		PostalCode:       record.PostalCode,
		Links:            catastrolinks.DeriveLinks(record.Reference),
	}
}

func toSearchReportDTO(report *domain.SearchReport) SearchReportDTO {
	dto := SearchReportDTO{
		RunID:           report.RunID.String(),
		Status:          string(report.Status),
		ReferencesFound: report.ReferencesFound,
		Enriched:        report.Enriched,
		MatchedCount:    len(report.Matches),
		Matches:         make([]PropertyRecordDTO, 0, len(report.Matches)),
		Failures:        make([]ReferenceFailureDTO, 0, len(report.Failures)),
	}
	for _, m := range report.Matches {
		dto.Matches = append(dto.Matches, toPropertyRecordDTO(m.Record))
	}
	for _, f := range report.Failures {
		dto.Failures = append(dto.Failures, ReferenceFailureDTO{
			Reference: f.Reference.Value,
			Stage:     f.Stage,
			Error:     f.Error,
		})
	}
	return dto
}
