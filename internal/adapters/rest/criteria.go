package rest

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"catastro-service/internal/core/domain"
)

// Имена полей формы поиска
const (
	fieldClass     = "clase"
	fieldAreaMin   = "metrosConstruidosMin"
	fieldAreaMax   = "metrosConstruidosMax"
	fieldProvinces = "provincias"
	fieldCities    = "ciudades"
	fieldDistricts = "barrios"
	fieldYearMin   = "añoConstruccionMin"
	fieldYearMax   = "añoConstruccionMax"
)

// Варианты без "ñ" для клиентов, которые не кодируют имена полей в UTF-8
var fieldAliases = map[string]string{
	fieldYearMin: "anoConstruccionMin",
	fieldYearMax: "anoConstruccionMax",
}

// ParseFilterCriteria строит критерии из значений формы.
// Пустое, нечисловое или нулевое значение числового поля означает отсутствие границы.
func ParseFilterCriteria(form url.Values) domain.FilterCriteria {
	var classes []string
	for _, v := range form[fieldClass] {
		classes = append(classes, domain.SplitCommaSeparated(v)...)
	}

	return domain.FilterCriteria{
		AllowedClasses:   domain.NewStringSet(classes...),
		MinBuiltArea:     parseBound(formValue(form, fieldAreaMin)),
		MaxBuiltArea:     parseBound(formValue(form, fieldAreaMax)),
		AllowedProvinces: domain.NewStringSet(domain.SplitCommaSeparated(formValue(form, fieldProvinces))...),
		AllowedCities:    domain.NewStringSet(domain.SplitCommaSeparated(formValue(form, fieldCities))...),
		AllowedDistricts: domain.NewStringSet(domain.SplitCommaSeparated(formValue(form, fieldDistricts))...),
		MinYear:          parseBound(formValue(form, fieldYearMin)),
		MaxYear:          parseBound(formValue(form, fieldYearMax)),
	}
}

func formValue(form url.Values, key string) string {
	if v := form.Get(key); v != "" {
		return v
	}
	if alias, ok := fieldAliases[key]; ok {
		return form.Get(alias)
	}
	return ""
}

// parseBound: запятая допускается как десятичный разделитель
func parseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
