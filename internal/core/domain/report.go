package domain

import "github.com/google/uuid"

// SearchStatus - итоговое состояние запуска конвейера
type SearchStatus string

const (
	// SearchStatusNoReferences - в таблице не найдено ни одной кадастровой ссылки (не ошибка)
	SearchStatusNoReferences SearchStatus = "no_references"
	SearchStatusCompleted    SearchStatus = "completed"
	SearchStatusCancelled    SearchStatus = "cancelled"
)

// Этапы обработки одной ссылки, на которых может произойти сбой
const (
	StageEnrichment = "enrichment"
	StageDispatch   = "dispatch"
)

// ReferenceFailure описывает сбой обработки одной ссылки
type ReferenceFailure struct {
	Reference CadastralReference
	Stage     string
	Error     string
}

// SearchReport - итог одного запуска
type SearchReport struct {
	RunID           uuid.UUID
	Status          SearchStatus
	ReferencesFound int
	Enriched        int
	Matches         []MatchedProperty
	Failures        []ReferenceFailure
}
