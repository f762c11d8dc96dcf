package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText обрезает пробелы и приводит строку к форме NFC,
// чтобы "Cádiz" из ответа реестра и из пользовательского ввода совпадали побайтно.
// Регистр не меняется.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SplitCommaSeparated разбирает список через запятую: элементы обрезаются, пустые отбрасываются
func SplitCommaSeparated(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := NormalizeText(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}
