package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	logger_adapter "catastro-service/internal/adapters/logger"
	"catastro-service/internal/adapters/gridreader"
	"catastro-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchUseCase struct {
	gotGrid     [][]interface{}
	gotCriteria domain.FilterCriteria
	report      *domain.SearchReport
	err         error
}

func (f *fakeSearchUseCase) Execute(_ context.Context, grid [][]interface{}, criteria domain.FilterCriteria) (*domain.SearchReport, error) {
	f.gotGrid = grid
	f.gotCriteria = criteria
	return f.report, f.err
}

type fakeLookupUseCase struct {
	record *domain.PropertyRecord
	err    error
}

func (f *fakeLookupUseCase) Execute(_ context.Context, raw string) (*domain.PropertyRecord, error) {
	if _, err := domain.ParseReference(raw); err != nil {
		return nil, err
	}
	return f.record, f.err
}

func newTestRouter(search *fakeSearchUseCase, lookup *fakeLookupUseCase) http.Handler {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	handlers := NewCatastroHandlers(search, lookup, gridreader.NewGridReaderAdapter(), 1<<20)
	return NewRouter(handlers, []string{"http://localhost:5173"}, logger)
}

func multipartBody(t *testing.T, filename, content string, fields map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleSearch(t *testing.T) {
	ref, err := domain.ParseReference("9872023VH5797S0001WX")
	require.NoError(t, err)
	record := domain.NewUnknownPropertyRecord(ref)
	record.BuiltArea = domain.KnownMeasure(90)
	record.PropertyClass = "Residencial"

	search := &fakeSearchUseCase{report: &domain.SearchReport{
		RunID:           uuid.New(),
		Status:          domain.SearchStatusCompleted,
		ReferencesFound: 1,
		Enriched:        1,
		Matches:         []domain.MatchedProperty{{Reference: ref, Record: record}},
	}}
	router := newTestRouter(search, &fakeLookupUseCase{})

	body, contentType := multipartBody(t, "data.csv", "9872023VH5797S0001WX;x\n", map[string][]string{
		"clase":                {"Residencial"},
		"metrosConstruidosMin": {"50"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	require.Len(t, search.gotGrid, 1)
	assert.Equal(t, "9872023VH5797S0001WX", search.gotGrid[0][0])
	assert.True(t, search.gotCriteria.AllowedClasses.Contains("Residencial"))
	require.NotNil(t, search.gotCriteria.MinBuiltArea)

	var resp SearchReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 1, resp.MatchedCount)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, 90.0, resp.Matches[0].BuiltArea)
	assert.Equal(t, "unknown", resp.Matches[0].ConstructionYear)
	assert.Contains(t, resp.Matches[0].Links.ReportPDF, "9872023VH5797S0001WX")
	assert.Empty(t, resp.Failures)
}

func TestHandleSearch_NoReferences(t *testing.T) {
	search := &fakeSearchUseCase{report: &domain.SearchReport{
		RunID:  uuid.New(),
		Status: domain.SearchStatusNoReferences,
	}}
	router := newTestRouter(search, &fakeLookupUseCase{})

	body, contentType := multipartBody(t, "data.csv", "a,b\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SearchReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_references", resp.Status)
	assert.NotNil(t, resp.Matches)
	assert.Empty(t, resp.Matches)
}

func TestHandleSearch_BadRequests(t *testing.T) {
	router := newTestRouter(&fakeSearchUseCase{}, &fakeLookupUseCase{})

	t.Run("missing file", func(t *testing.T) {
		body, contentType := multipartBody(t, "", "", map[string][]string{"clase": {"x"}})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported format", func(t *testing.T) {
		body, contentType := multipartBody(t, "data.ods", "whatever", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unsupported file format")
	})

	t.Run("not multipart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleSearch_Cancelled(t *testing.T) {
	search := &fakeSearchUseCase{
		report: &domain.SearchReport{RunID: uuid.New(), Status: domain.SearchStatusCancelled, ReferencesFound: 3},
		err:    context.Canceled,
	}
	router := newTestRouter(search, &fakeLookupUseCase{})

	body, contentType := multipartBody(t, "data.csv", "9872023VH5797S0001WX\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandleLookupReference(t *testing.T) {
	ref, err := domain.ParseReference("12345A12312345AB")
	require.NoError(t, err)
	record := domain.NewUnknownPropertyRecord(ref)
	record.Province = "TOLEDO"

	t.Run("ok", func(t *testing.T) {
		router := newTestRouter(&fakeSearchUseCase{}, &fakeLookupUseCase{record: &record})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/references/12345A12312345AB", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp PropertyRecordDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "rustic", resp.Format)
		assert.Equal(t, "TOLEDO", resp.Province)
		assert.Equal(t, "unknown", resp.BuiltArea)
	})

	t.Run("not a reference", func(t *testing.T) {
		router := newTestRouter(&fakeSearchUseCase{}, &fakeLookupUseCase{record: &record})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/references/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("registry failure", func(t *testing.T) {
		router := newTestRouter(&fakeSearchUseCase{}, &fakeLookupUseCase{err: errors.New("timeout")})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/references/12345A12312345AB", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeSearchUseCase{}, &fakeLookupUseCase{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
