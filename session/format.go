package session

import (
	"time"
)

// Форматы, в которых бэкенд присылает метки времени
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatTimestamp переводит ISO-метку времени в короткое время "ЧЧ:ММ".
// Пустой вход даёт пустой выход, неразбираемый — возвращается как есть,
// наружу ошибка не уходит.
func FormatTimestamp(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Local().Format("15:04")
		}
	}
	return iso
}
