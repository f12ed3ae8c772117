package format

import (
	"math"
	"strings"
	"time"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// layouts accepted for string inputs, tried in order. Inputs without zone
// information are interpreted as UTC and are never shifted on output.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseTime interprets strings using layouts and numbers as Unix milliseconds.
func parseTime(v model.Value) (time.Time, bool) {
	switch v.Kind() {
	case model.KindNumber:
		ms, ok := v.Number()
		if !ok || math.IsInf(ms, 0) || math.Abs(ms) > 8.64e15 {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	case model.KindString:
		raw := strings.TrimSpace(v.String())
		if raw == "" {
			return time.Time{}, false
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
