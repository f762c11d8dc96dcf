package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func madridRecord() PropertyRecord {
	return PropertyRecord{
		Reference:        CadastralReference{Value: "9872023VH5797S0001WX", Format: FormatUrban},
		ConstructionYear: KnownMeasure(1975),
		BuiltArea:        KnownMeasure(85),
		Location:         "CL MAYOR 1 MADRID",
		PropertyClass:    "Residencial",
		Province:         "MADRID",
		City:             "MADRID",
		District:         "1",
	}
}

func TestEvaluate_EmptyCriteriaMatchesEverything(t *testing.T) {
	var c FilterCriteria
	assert.True(t, c.Matches(madridRecord()))
	assert.True(t, c.Matches(NewUnknownPropertyRecord(CadastralReference{})))
}

func TestEvaluate_Class(t *testing.T) {
	c := FilterCriteria{AllowedClasses: NewStringSet("Residencial", "Oficinas")}
	assert.True(t, c.Evaluate(madridRecord()).Class)

	rec := madridRecord()
	rec.PropertyClass = "Industrial"
	assert.False(t, c.Evaluate(rec).Class)

	rec.PropertyClass = Unknown
	assert.False(t, c.Evaluate(rec).Class)
}

func TestEvaluate_ClassLiteralUnknownDoesNotMatchSentinel(t *testing.T) {
	c := FilterCriteria{AllowedClasses: NewStringSet(Unknown)}

	rec := madridRecord()
	rec.PropertyClass = Unknown
	assert.False(t, c.Evaluate(rec).Class)
	assert.False(t, c.Evaluate(madridRecord()).Class)
}

func TestEvaluate_AreaBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		area     Measure
		want     bool
	}{
		{name: "inclusive min", min: f(85), area: KnownMeasure(85), want: true},
		{name: "inclusive max", max: f(85), area: KnownMeasure(85), want: true},
		{name: "below min", min: f(90), area: KnownMeasure(85), want: false},
		{name: "above max", max: f(80), area: KnownMeasure(85), want: false},
		{name: "within range", min: f(50), max: f(100), area: KnownMeasure(85), want: true},
		{name: "unknown with min", min: f(50), area: UnknownMeasure(), want: false},
		{name: "unknown with max", max: f(100), area: UnknownMeasure(), want: false},
		{name: "unknown without bounds", area: UnknownMeasure(), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := madridRecord()
			rec.BuiltArea = tt.area
			c := FilterCriteria{MinBuiltArea: tt.min, MaxBuiltArea: tt.max}
			assert.Equal(t, tt.want, c.Evaluate(rec).Area)
		})
	}
}

func TestEvaluate_YearBounds(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		year     Measure
		want     bool
	}{
		{name: "inclusive min", min: f(1960), max: f(1980), year: KnownMeasure(1960), want: true},
		{name: "inclusive max", min: f(1960), max: f(1980), year: KnownMeasure(1980), want: true},
		{name: "single year range", min: f(1980), max: f(1980), year: KnownMeasure(1980), want: true},
		{name: "within range", min: f(1960), max: f(1980), year: KnownMeasure(1975), want: true},
		{name: "below min", min: f(1960), year: KnownMeasure(1959), want: false},
		{name: "above max", min: f(1960), max: f(1980), year: KnownMeasure(1999), want: false},
		{name: "unknown with bounds", min: f(1960), max: f(1980), year: UnknownMeasure(), want: false},
		{name: "unknown without bounds", year: UnknownMeasure(), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := madridRecord()
			rec.ConstructionYear = tt.year
			c := FilterCriteria{MinYear: tt.min, MaxYear: tt.max}
			assert.Equal(t, tt.want, c.Evaluate(rec).Year)
		})
	}
}

func TestEvaluate_Location(t *testing.T) {
	c := FilterCriteria{
		AllowedProvinces: NewStringSet("MADRID", "TOLEDO"),
		AllowedCities:    NewStringSet("MADRID"),
		AllowedDistricts: NewStringSet("1", "2"),
	}
	assert.True(t, c.Evaluate(madridRecord()).Location)

	rec := madridRecord()
	rec.District = ""
	assert.False(t, c.Evaluate(rec).Location, "unset district fails a non-empty set")

	rec = madridRecord()
	rec.City = "ALCALA DE HENARES"
	assert.False(t, c.Evaluate(rec).Location)

	onlyProvince := FilterCriteria{AllowedProvinces: NewStringSet("MADRID")}
	rec.District = ""
	assert.True(t, onlyProvince.Evaluate(rec).Location)
}

func TestEvaluate_VerdictReportsEachPredicate(t *testing.T) {
	c := FilterCriteria{
		AllowedClasses: NewStringSet("Industrial"),
		MinBuiltArea:   f(10),
		MaxYear:        f(1900),
	}
	v := c.Evaluate(madridRecord())
	assert.Equal(t, FilterVerdict{Class: false, Area: true, Location: true, Year: false}, v)
	assert.False(t, v.Passed())
	assert.False(t, c.Matches(madridRecord()))
}

func TestStringSet(t *testing.T) {
	s := NewStringSet("a", "b", "a")
	assert.Len(t, s, 2)
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.ElementsMatch(t, []string{"a", "b"}, s.Values())
}
