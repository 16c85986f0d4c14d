// Package summary формирует короткое превью описания товара для карточки.
package summary

import "unicode/utf8"

const (
	// MaxLength — максимальное количество символов превью без многоточия.
	MaxLength = 100
	// Ellipsis добавляется к обрезанному описанию.
	Ellipsis = "..."
)

// Summarize возвращает описание без изменений, если в нём не больше MaxLength символов,
// иначе первые MaxLength символов и Ellipsis. Символом считается руна.
func Summarize(description string) string {
	if utf8.RuneCountInString(description) <= MaxLength {
		return description
	}

	n := 0
	for i := range description {
		if n == MaxLength {
			return description[:i] + Ellipsis
		}
		n++
	}

	return description
}
