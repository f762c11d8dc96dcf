package domain

import "strconv"

// Unknown - значение-заглушка для полей, которые не удалось извлечь из ответа реестра
const Unknown = "unknown"

// Measure - числовое значение, которое может быть неизвестно
type Measure struct {
	Value float64
	Known bool
}

// KnownMeasure создает известное значение
func KnownMeasure(v float64) Measure {
	return Measure{Value: v, Known: true}
}

// UnknownMeasure создает значение-заглушку
func UnknownMeasure() Measure {
	return Measure{}
}

func (m Measure) String() string {
	if !m.Known {
		return Unknown
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// PropertyRecord - результат обогащения одной кадастровой ссылки данными реестра.
// Создается заново при каждом запросе и после этого не изменяется.
type PropertyRecord struct {
	Reference CadastralReference

	ConstructionYear Measure
	BuiltArea        Measure
	Location         string // адрес или Unknown
	PropertyClass    string // класс использования (luso) или Unknown

	// Пустая строка означает "не задано", заглушка не подставляется
	Province   string
	City       string
	District   string
	PostalCode string
}

// NewUnknownPropertyRecord возвращает запись, в которой все извлекаемые поля неизвестны
func NewUnknownPropertyRecord(ref CadastralReference) PropertyRecord {
	return PropertyRecord{
		Reference:        ref,
		ConstructionYear: UnknownMeasure(),
		BuiltArea:        UnknownMeasure(),
		Location:         Unknown,
		PropertyClass:    Unknown,
	}
}

// MatchedProperty - запись, прошедшая все фильтры
type MatchedProperty struct {
	Reference CadastralReference
	Record    PropertyRecord
}
