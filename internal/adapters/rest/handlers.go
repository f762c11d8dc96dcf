package rest

import (
	"errors"
	"net/http"

	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
	usecases_port "catastro-service/internal/core/port/usecases"

	"github.com/go-chi/chi/v5"
)

const uploadFieldName = "file"

type CatastroHandlers struct {
	searchUC       usecases_port.SearchReferencesPort
	lookupUC       usecases_port.LookupReferencePort
	gridReader     port.GridReaderPort
	maxUploadBytes int64
}

func NewCatastroHandlers(
	searchUC usecases_port.SearchReferencesPort,
	lookupUC usecases_port.LookupReferencePort,
	gridReader port.GridReaderPort,
	maxUploadBytes int64,
) *CatastroHandlers {
	return &CatastroHandlers{
		searchUC:       searchUC,
		lookupUC:       lookupUC,
		gridReader:     gridReader,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleSearch - POST /api/v1/searches (multipart: file + поля формы)
func (h *CatastroHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSearch"})

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Request must be multipart/form-data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Field 'file' is required")
		return
	}
	defer file.Close()

	grid, err := h.gridReader.ReadGrid(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedGridFormat) {
			WriteJSONError(w, http.StatusBadRequest, "Unsupported file format, expected .xlsx or .csv")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, "Could not read the uploaded file")
		return
	}

	criteria := ParseFilterCriteria(r.MultipartForm.Value)

	searchLogger := logger.WithFields(port.Fields{
		"filename":  header.Filename,
		"rows":      len(grid),
		"classes":   len(criteria.AllowedClasses),
		"provinces": len(criteria.AllowedProvinces),
	})
	searchLogger.Info("Received search request", nil)

	report, err := h.searchUC.Execute(r.Context(), grid, criteria)
	if err != nil {
		// Отмена контекста: отчет частичный, со статусом cancelled
		searchLogger.Warn("Search did not complete", port.Fields{"error": err.Error()})
		if report == nil {
			WriteJSONError(w, http.StatusInternalServerError, "Search failed")
			return
		}
	}

	RespondWithJSON(w, http.StatusOK, toSearchReportDTO(report))
}

// HandleLookupReference - GET /api/v1/references/{reference}
func (h *CatastroHandlers) HandleLookupReference(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleLookupReference"})

	raw := chi.URLParam(r, "reference")

	record, err := h.lookupUC.Execute(r.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrNotAReference) {
			WriteJSONError(w, http.StatusBadRequest, "Value is not a valid cadastral reference")
			return
		}
		logger.Error("Lookup failed", err, port.Fields{"reference": raw})
		WriteJSONError(w, http.StatusBadGateway, "Catastro registry request failed")
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyRecordDTO(*record))
}

func (h *CatastroHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
