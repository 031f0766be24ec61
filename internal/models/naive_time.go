package models

import (
	"bytes"
	"fmt"
	"time"
)

// naiveLayouts форматы даты без часового пояса, которые отдаёт бэкенд.
var naiveLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NaiveTime дата-время без часового пояса. Значения без зоны трактуются как UTC.
type NaiveTime struct {
	time.Time
}

// UnmarshalJSON разбирает строку даты в одном из naiveLayouts; null оставляет нулевое значение.
func (t *NaiveTime) UnmarshalJSON(data []byte) error {
	const op = "models.NaiveTime.UnmarshalJSON"

	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%s: expected string, got %s", op, data)
	}
	raw := string(data[1 : len(data)-1])
	for _, layout := range naiveLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported date %q", op, raw)
}

// MarshalJSON пишет дату в формате бэкенда (без зоны).
func (t NaiveTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format("2006-01-02T15:04:05.999999") + `"`), nil
}

// MarshalYAML нужен для вывода в формате yaml.
func (t NaiveTime) MarshalYAML() (any, error) {
	return t.UTC().Format("2006-01-02T15:04:05"), nil
}
