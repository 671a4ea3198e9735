package decoder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mcncl/gamedata/internal/models"
	"github.com/shopspring/decimal"
)

// A converter turns payload text into a target type.
type converter[T any] func(text string) (T, error)

func toString(text string) (string, error) { return text, nil }

func toInt(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}

func toFloat(text string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	return float32(f), err
}

func toDouble(text string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(text), 64)
}

func toBigNumber(text string) (models.BigNumber, error) {
	return decimal.NewFromString(strings.TrimSpace(text))
}

// toBool accepts the literals true and false in any letter case.
func toBool(text string) (bool, error) {
	t := strings.TrimSpace(text)
	switch {
	case strings.EqualFold(t, "true"):
		return true, nil
	case strings.EqualFold(t, "false"):
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean literal %q", text)
}

// timeLayouts are tried in order by toTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTime parses the timestamp formats the backend emits and returns UTC.
func toTime(text string) (time.Time, error) {
	t := strings.TrimSpace(text)
	var lastErr error
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, t)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// percent splits text at the first '%'. It returns the text before the
// sign and whether one was present.
func percent(text string) (string, bool) {
	before, _, found := strings.Cut(text, "%")
	return before, found
}
