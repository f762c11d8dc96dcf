package catastrofetcher

import (
	"io"
	"testing"

	logger_adapter "catastro-service/internal/adapters/logger"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `{
  "consulta_dnprcResult": {
    "control": {"cudnp": 1, "cucons": 1},
    "bico": {
      "bi": {
        "idbi": {"cn": "UR", "rc": {"pc1": "9872023", "pc2": "VH5797S", "car": "0001", "cc1": "W", "cc2": "X"}},
        "dt": {
          "loine": {"cp": "28", "cm": "79"},
          "cmc": "900",
          "np": "MADRID",
          "nm": "MADRID",
          "locs": {"lous": {"lourb": {"dir": {"cv": "1", "tv": "CL", "nv": "MAYOR"}, "dp": "28013", "dm": "1"}}}
        },
        "ldt": "CL MAYOR 1 MADRID (MADRID)",
        "debi": {"luso": "Residencial", "sfc": "85", "cpt": "100,000000", "ant": "1975"}
      }
    }
  }
}`

func testLogger() port.LoggerPort {
	return logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
}

func testRef(t *testing.T) domain.CadastralReference {
	t.Helper()
	ref, err := domain.ParseReference("9872023VH5797S0001WX")
	require.NoError(t, err)
	return ref
}

func TestToDomainRecord_Full(t *testing.T) {
	ref := testRef(t)

	record, err := toDomainRecord([]byte(fullResponse), ref, testLogger())
	require.NoError(t, err)

	assert.Equal(t, ref, record.Reference)
	assert.Equal(t, domain.KnownMeasure(1975), record.ConstructionYear)
	assert.Equal(t, domain.KnownMeasure(85), record.BuiltArea)
	assert.Equal(t, "CL MAYOR 1 MADRID (MADRID)", record.Location)
	assert.Equal(t, "Residencial", record.PropertyClass)
	assert.Equal(t, "MADRID", record.Province)
	assert.Equal(t, "MADRID", record.City)
	assert.Equal(t, "1", record.District)
	assert.Equal(t, "28013", record.PostalCode)
}

func TestToDomainRecord_Partial(t *testing.T) {
	ref := testRef(t)

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, r *domain.PropertyRecord)
	}{
		{
			name: "empty object",
			body: `{}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, domain.NewUnknownPropertyRecord(ref), *r)
			},
		},
		{
			name: "null levels",
			body: `{"consulta_dnprcResult": {"bico": null}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, domain.NewUnknownPropertyRecord(ref), *r)
			},
		},
		{
			name: "level of unexpected shape",
			body: `{"consulta_dnprcResult": {"bico": {"bi": [1, 2, 3]}}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, domain.NewUnknownPropertyRecord(ref), *r)
			},
		},
		{
			name: "numbers as json numbers and comma decimals",
			body: `{"consulta_dnprcResult": {"bico": {"bi": {"debi": {"ant": 1999, "sfc": "72,5"}}}}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, domain.KnownMeasure(1999), r.ConstructionYear)
				assert.Equal(t, domain.KnownMeasure(72.5), r.BuiltArea)
				assert.Equal(t, domain.Unknown, r.PropertyClass)
				assert.Equal(t, domain.Unknown, r.Location)
			},
		},
		{
			name: "unparsable measures and blank text",
			body: `{"consulta_dnprcResult": {"bico": {"bi": {"ldt": "   ", "debi": {"ant": "n/d", "sfc": "", "luso": "Industrial"}}}}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.False(t, r.ConstructionYear.Known)
				assert.False(t, r.BuiltArea.Known)
				assert.Equal(t, domain.Unknown, r.Location)
				assert.Equal(t, "Industrial", r.PropertyClass)
			},
		},
		{
			name: "rustic property without urban localization",
			body: `{"consulta_dnprcResult": {"bico": {"bi": {"dt": {"np": "TOLEDO", "nm": "OCAÑA", "locs": {"lors": {"lorus": {"cpp": {"cpo": "5"}}}}}}}}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, "TOLEDO", r.Province)
				assert.Equal(t, "OCAÑA", r.City)
				assert.Empty(t, r.District)
				assert.Empty(t, r.PostalCode)
			},
		},
		{
			name: "registry error list",
			body: `{"consulta_dnprcResult": {"lerr": [{"err": {"cod": "6", "des": "LA REFERENCIA CATASTRAL NO EXISTE"}}]}}`,
			check: func(t *testing.T, r *domain.PropertyRecord) {
				assert.Equal(t, domain.NewUnknownPropertyRecord(ref), *r)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := toDomainRecord([]byte(tt.body), ref, testLogger())
			require.NoError(t, err)
			tt.check(t, record)
		})
	}
}

func TestToDomainRecord_SpanishThousandsSeparator(t *testing.T) {
	body := `{"consulta_dnprcResult": {"bico": {"bi": {"debi": {"ant": "1975", "sfc": "1.234,5"}}}}}`
	rec, err := toDomainRecord([]byte(body), testRef(t), testLogger())
	require.NoError(t, err)
	assert.Equal(t, domain.KnownMeasure(1234.5), rec.BuiltArea)
	assert.Equal(t, domain.KnownMeasure(1975), rec.ConstructionYear)
}

func TestToDomainRecord_InvalidJSON(t *testing.T) {
	_, err := toDomainRecord([]byte("<html>maintenance</html>"), testRef(t), testLogger())
	assert.Error(t, err)
}

func TestFlexTextMeasure(t *testing.T) {
	tests := []struct {
		raw  flexText
		want domain.Measure
	}{
		{flexText{value: "12", ok: true}, domain.KnownMeasure(12)},
		{flexText{value: "12,75", ok: true}, domain.KnownMeasure(12.75)},
		{flexText{value: "12.5", ok: true}, domain.KnownMeasure(12.5)},
		{flexText{value: "1.234", ok: true}, domain.KnownMeasure(1234)},
		{flexText{value: "1.234,5", ok: true}, domain.KnownMeasure(1234.5)},
		{flexText{value: "12.345.678", ok: true}, domain.KnownMeasure(12345678)},
		{flexText{value: "1.234", ok: true, numeric: true}, domain.KnownMeasure(1.234)},
		{flexText{value: "1,234.5", ok: true}, domain.UnknownMeasure()},
		{flexText{value: "NaN", ok: true}, domain.UnknownMeasure()},
		{flexText{value: "abc", ok: true}, domain.UnknownMeasure()},
		{flexText{}, domain.UnknownMeasure()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.raw.measure(), tt.raw.value)
	}
}
