package catastrofetcher

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
)

// optional - уровень вложенности ответа, который может отсутствовать.
// Отсутствие, null или неожиданная форма значения дают пустой объект, а не ошибку.
type optional[T any] struct {
	value *T
}

func (o *optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		o.value = nil
		return nil
	}
	o.value = &v
	return nil
}

// get возвращает значение уровня или пустой объект
func (o optional[T]) get() T {
	if o.value == nil {
		var zero T
		return zero
	}
	return *o.value
}

// flexText - скалярное поле, которое реестр отдает то строкой, то числом
type flexText struct {
	value string
	ok    bool
	// numeric - значение пришло JSON-числом, разделители не переводятся
	numeric bool
}

func (t *flexText) UnmarshalJSON(data []byte) error {
	t.value, t.ok, t.numeric = "", false, false

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s = domain.NormalizeText(s); s != "" {
			t.value, t.ok = s, true
		}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		t.value, t.ok, t.numeric = n.String(), true, true
	}
	return nil
}

// orUnknown подставляет заглушку вместо отсутствующего значения
func (t flexText) orUnknown() string {
	if !t.ok {
		return domain.Unknown
	}
	return t.value
}

// orEmpty - для необязательных полей, которые остаются незаданными
func (t flexText) orEmpty() string {
	return t.value
}

// spanishNumber - число в испанской записи: точка отделяет тысячи группами по три цифры
var spanishNumber = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+(,\d+)?$`)

// measure разбирает число. В строках действует испанская запись:
// "1.234,5" и "1.234" читаются как 1234,5 и 1234, одиночная запятая - десятичный разделитель.
func (t flexText) measure() domain.Measure {
	if !t.ok {
		return domain.UnknownMeasure()
	}
	raw := t.value
	switch {
	case t.numeric:
	case spanishNumber.MatchString(raw):
		raw = strings.Replace(strings.ReplaceAll(raw, ".", ""), ",", ".", 1)
	case !strings.Contains(raw, "."):
		raw = strings.Replace(raw, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.UnknownMeasure()
	}
	return domain.KnownMeasure(v)
}

// apiResponse - ответ Consulta_DNPRC. Описаны только используемые поля.
type apiResponse struct {
	Result optional[dnprcResult] `json:"consulta_dnprcResult"`
}

type dnprcResult struct {
	Bico optional[bico] `json:"bico"`
	// Ссылка соответствует нескольким объектам
	MultipleUnits json.RawMessage `json:"lrcdnp"`
	// Список ошибок реестра
	Errors json.RawMessage `json:"lerr"`
}

type bico struct {
	Bi optional[buildingInfo] `json:"bi"`
}

// buildingInfo - объект с физическими характеристиками (bi)
type buildingInfo struct {
	Territory optional[territoryData] `json:"dt"`
	Location  flexText                `json:"ldt"`
	Economic  optional[economicData]  `json:"debi"`
}

type economicData struct {
	Usage flexText `json:"luso"`
	Area  flexText `json:"sfc"`
	Year  flexText `json:"ant"`
}

type territoryData struct {
	ProvinceName     flexText                `json:"np"`
	MunicipalityName flexText                `json:"nm"`
	Localization     optional[localizations] `json:"locs"`
}

type localizations struct {
	Urban optional[urbanLocalization] `json:"lous"`
}

type urbanLocalization struct {
	Address optional[urbanAddress] `json:"lourb"`
}

type urbanAddress struct {
	District   flexText `json:"dm"`
	PostalCode flexText `json:"dp"`
}

func (r apiResponse) buildingInfo() buildingInfo {
	return r.Result.get().Bico.get().Bi.get()
}

func (b buildingInfo) urbanAddress() urbanAddress {
	return b.Territory.get().Localization.get().Urban.get().Address.get()
}

// toDomainRecord - главный метод-трансформер
func toDomainRecord(jsonData []byte, ref domain.CadastralReference, logger port.LoggerPort) (*domain.PropertyRecord, error) {
	var resp apiResponse
	if err := json.Unmarshal(jsonData, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catastro response: %w", err)
	}

	result := resp.Result.get()
	if hasContent(result.Errors) {
		logger.Warn("Catastro reported errors for reference", port.Fields{
			"reference": ref.Value,
			"lerr":      truncate(string(result.Errors), 256),
		})
	}
	if hasContent(result.MultipleUnits) {
		logger.Warn("Reference resolves to several properties, building info is not available", port.Fields{
			"reference": ref.Value,
		})
	}

	bi := resp.buildingInfo()
	economic := bi.Economic.get()
	territory := bi.Territory.get()
	address := bi.urbanAddress()

	record := &domain.PropertyRecord{
		Reference:        ref,
		ConstructionYear: economic.Year.measure(),
		BuiltArea:        economic.Area.measure(),
		Location:         bi.Location.orUnknown(),
		PropertyClass:    economic.Usage.orUnknown(),

		Province:   territory.ProvinceName.orEmpty(),
		City:       territory.MunicipalityName.orEmpty(),
		District:   address.District.orEmpty(),
		PostalCode: address.PostalCode.orEmpty(),
	}

	if !economic.Year.ok || !economic.Area.ok || !economic.Usage.ok {
		logger.Debug("Building info is partial, sentinels substituted", port.Fields{
			"reference": ref.Value,
			"year":      record.ConstructionYear.String(),
			"area":      record.BuiltArea.String(),
			"class":     record.PropertyClass,
		})
	}

	return record, nil
}

func hasContent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null" && trimmed != "[]" && trimmed != "{}"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
