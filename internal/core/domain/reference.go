package domain

// ReferenceFormat - формат кадастровой ссылки
type ReferenceFormat string

const (
	FormatUrban  ReferenceFormat = "urban"
	FormatRustic ReferenceFormat = "rustic"
	FormatShort  ReferenceFormat = "short"
)

// CadastralReference - кадастровая ссылка вместе с форматом, которому она соответствует
type CadastralReference struct {
	Value  string
	Format ReferenceFormat
}

func (r CadastralReference) String() string {
	return r.Value
}

// Класс символа в позиции шаблона
type charClass uint8

const (
	digit charClass = iota
	upper
)

// segment - подряд идущие символы одного класса
type segment struct {
	class charClass
	count int
}

type referenceGrammar struct {
	format   ReferenceFormat
	segments []segment
	length   int
}

func newGrammar(format ReferenceFormat, segments ...segment) referenceGrammar {
	length := 0
	for _, s := range segments {
		length += s.count
	}
	return referenceGrammar{format: format, segments: segments, length: length}
}

// Порядок важен: форматы проверяются строго в этой последовательности
var grammars = []referenceGrammar{
	// 7 цифр, 2 буквы, 4 цифры, 1 буква, 4 цифры, 2 буквы
	newGrammar(FormatUrban,
		segment{digit, 7}, segment{upper, 2}, segment{digit, 4},
		segment{upper, 1}, segment{digit, 4}, segment{upper, 2}),
	// 5 цифр, 1 буква, 3 цифры, 5 цифр, 2 буквы
	newGrammar(FormatRustic,
		segment{digit, 5}, segment{upper, 1}, segment{digit, 3},
		segment{digit, 5}, segment{upper, 2}),
	// 7 цифр, 2 буквы, 4 цифры, 1 буква
	newGrammar(FormatShort,
		segment{digit, 7}, segment{upper, 2}, segment{digit, 4}, segment{upper, 1}),
}

func (g referenceGrammar) matches(s string) bool {
	// Сравниваем байты: любой не-ASCII символ даст неверную длину или класс
	if len(s) != g.length {
		return false
	}
	pos := 0
	for _, seg := range g.segments {
		for i := 0; i < seg.count; i++ {
			c := s[pos]
			switch seg.class {
			case digit:
				if c < '0' || c > '9' {
					return false
				}
			case upper:
				if c < 'A' || c > 'Z' {
					return false
				}
			}
			pos++
		}
	}
	return true
}

// ClassifyReference определяет формат кадастровой ссылки.
// Значения, не являющиеся строками, отбрасываются сразу. Нормализация (регистр, пробелы) не выполняется.
func ClassifyReference(value interface{}) (CadastralReference, bool) {
	s, ok := value.(string)
	if !ok {
		return CadastralReference{}, false
	}
	for _, g := range grammars {
		if g.matches(s) {
			return CadastralReference{Value: s, Format: g.format}, true
		}
	}
	return CadastralReference{}, false
}

// ParseReference - вариант ClassifyReference для строкового ввода (REST, CLI)
func ParseReference(s string) (CadastralReference, error) {
	ref, ok := ClassifyReference(s)
	if !ok {
		return CadastralReference{}, ErrNotAReference
	}
	return ref, nil
}
