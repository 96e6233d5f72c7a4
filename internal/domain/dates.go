package domain

import (
	"strings"
	"time"
)

// Канонический формат дат для order_find и ключа кэша.
const CanonicalDateLayout = "01/02/2006"

// Границы «всей истории», если диапазон дат не задан или некорректен.
const (
	DefaultStartDate = "01/01/2000"
	DefaultEndDate   = "01/01/2100"
)

// inputLayouts — допустимые форматы входных дат.
var inputLayouts = []string{
	"2006-01-02", // <input type="date">
	"01/02/2006",
	"1/2/2006",
}

// CanonicalDate — приводит дату к виду MM/DD/YYYY; false, если дата пустая или некорректная.
func CanonicalDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(CanonicalDateLayout), true
		}
	}
	return "", false
}

// CanonicalRange — канонический диапазон дат.
// Если хотя бы одна дата некорректна, диапазон целиком заменяется на всю историю.
func CanonicalRange(start, end string) (string, string) {
	s, okStart := CanonicalDate(start)
	e, okEnd := CanonicalDate(end)
	if !okStart || !okEnd {
		return DefaultStartDate, DefaultEndDate
	}
	return s, e
}
