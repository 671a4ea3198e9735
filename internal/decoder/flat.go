package decoder

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/models"
	"go.uber.org/zap"
)

// Flat decodes values out of flattened JSON objects.
// The zero value is ready to use and logs through Logger.
type Flat struct {
	log *zap.Logger
}

// NewFlat returns a Flat decoder configured by opts.
func NewFlat(opts ...Option) Flat {
	o := buildOptions(opts)
	return Flat{log: o.log}
}

func (f Flat) policy() policy {
	return policy{log: f.log, model: "flat"}
}

// text returns the string form of the value at key. Nested objects and
// arrays are rendered as compact JSON.
func (f Flat) text(c models.FlatObject, key string) (string, *errors.AppError) {
	v, ok := c[key]
	if !ok {
		return "", errors.NewMissingKeyError(key)
	}
	if s, ok := models.ScalarText(v); ok {
		return s, nil
	}
	if v == nil {
		return "", errors.NewTagMismatchError(key, "scalar", "null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.NewMalformedNestingError(key, err.Error())
	}
	return string(b), nil
}

// number reads key as text and converts it, applying the percent rule:
// "12.5%" is parsed as 12.5 and scaled by 0.01.
func number[T float32 | float64 | int](f Flat, op string, c models.FlatObject, key string, def T, conv converter[T]) T {
	p := f.policy()
	s, appErr := f.text(c, key)
	if appErr != nil {
		return fallback(p, op, appErr, def)
	}
	body, isPercent := percent(s)
	v, err := conv(body)
	if err != nil {
		return fallback(p, op, errors.NewParseFailureError(key, s, err), def)
	}
	if isPercent {
		return T(float64(v) * 0.01)
	}
	return v
}

// String returns the text of the value at key.
func (f Flat) String(c models.FlatObject, key string, def string) string {
	s, appErr := f.text(c, key)
	if appErr != nil {
		return fallback(f.policy(), "String", appErr, def)
	}
	return s
}

// Int decodes key as an int. A percent value is scaled and truncated
// toward zero, so "150%" is 1.
func (f Flat) Int(c models.FlatObject, key string, def int) int {
	return number(f, "Int", c, key, def, toInt)
}

// Float decodes key as a float32, honouring the percent suffix.
func (f Flat) Float(c models.FlatObject, key string, def float32) float32 {
	return number(f, "Float", c, key, def, toFloat)
}

// Double decodes key as a float64, honouring the percent suffix.
func (f Flat) Double(c models.FlatObject, key string, def float64) float64 {
	return number(f, "Double", c, key, def, toDouble)
}

// Bool decodes key as a true/false literal in any letter case.
func (f Flat) Bool(c models.FlatObject, key string, def bool) bool {
	s, appErr := f.text(c, key)
	if appErr != nil {
		return fallback(f.policy(), "Bool", appErr, def)
	}
	v, err := toBool(s)
	if err != nil {
		return fallback(f.policy(), "Bool", errors.NewParseFailureError(key, s, err), def)
	}
	return v
}

// Time decodes key as a timestamp and returns it in UTC.
func (f Flat) Time(c models.FlatObject, key string, def time.Time) time.Time {
	s, appErr := f.text(c, key)
	if appErr != nil {
		return fallback(f.policy(), "Time", appErr, def)
	}
	t, err := toTime(s)
	if err != nil {
		return fallback(f.policy(), "Time", errors.NewParseFailureError(key, s, err), def)
	}
	return t
}

// Object returns the nested flat object at key, or nil.
func (f Flat) Object(c models.FlatObject, key string) models.FlatObject {
	v, ok := c[key]
	if !ok {
		return fallback[models.FlatObject](f.policy(), "Object", errors.NewMissingKeyError(key), nil)
	}
	obj, ok := v.(models.FlatObject)
	if !ok {
		return fallback[models.FlatObject](f.policy(), "Object", errors.NewMalformedNestingError(key, "value is not an object"), nil)
	}
	return obj
}

// Array returns the nested flat array at key. It returns an empty array
// when key is absent or not an array.
func (f Flat) Array(c models.FlatObject, key string) models.FlatArray {
	v, ok := c[key]
	if !ok {
		return fallback(f.policy(), "Array", errors.NewMissingKeyError(key), models.FlatArray{})
	}
	arr, ok := v.(models.FlatArray)
	if !ok {
		return fallback(f.policy(), "Array", errors.NewMalformedNestingError(key, "value is not an array"), models.FlatArray{})
	}
	return arr
}
