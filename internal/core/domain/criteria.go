package domain

// StringSet - множество строк. Пустое множество означает отсутствие ограничения.
type StringSet map[string]struct{}

// NewStringSet создает множество из списка значений
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// allows - пустое множество пропускает любое значение
func (s StringSet) allows(v string) bool {
	return len(s) == 0 || s.Contains(v)
}

// Values возвращает элементы множества (порядок не определен)
func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	return values
}

// FilterCriteria - критерии отбора, неизменяемые в течение одного запуска.
// nil-граница или пустое множество означают "без ограничения по этому измерению".
type FilterCriteria struct {
	AllowedClasses StringSet

	MinBuiltArea *float64
	MaxBuiltArea *float64

	AllowedProvinces StringSet
	AllowedCities    StringSet
	AllowedDistricts StringSet

	MinYear *float64
	MaxYear *float64
}

// FilterVerdict - результат проверки каждого из предикатов
type FilterVerdict struct {
	Class    bool
	Area     bool
	Location bool
	Year     bool
}

// Passed - логическое И всех предикатов
func (v FilterVerdict) Passed() bool {
	return v.Class && v.Area && v.Location && v.Year
}

// Evaluate вычисляет все четыре предиката. Функция чистая.
func (c FilterCriteria) Evaluate(record PropertyRecord) FilterVerdict {
	return FilterVerdict{
		Class: c.classAllowed(record.PropertyClass),
		Area:  withinBounds(record.BuiltArea, c.MinBuiltArea, c.MaxBuiltArea),
		Location: c.AllowedProvinces.allows(record.Province) &&
			c.AllowedCities.allows(record.City) &&
			c.AllowedDistricts.allows(record.District),
		Year: withinBounds(record.ConstructionYear, c.MinYear, c.MaxYear),
	}
}

// classAllowed - Unknown не совпадает ни с одним кодом класса, даже если пользователь ввел его буквально
func (c FilterCriteria) classAllowed(class string) bool {
	if len(c.AllowedClasses) == 0 {
		return true
	}
	return class != Unknown && c.AllowedClasses.Contains(class)
}

// Matches сообщает, проходит ли запись все критерии
func (c FilterCriteria) Matches(record PropertyRecord) bool {
	return c.Evaluate(record).Passed()
}

// withinBounds - границы включительные. Неизвестное значение не удовлетворяет ни одной активной границе.
func withinBounds(m Measure, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if !m.Known {
		return false
	}
	if min != nil && m.Value < *min {
		return false
	}
	if max != nil && m.Value > *max {
		return false
	}
	return true
}
