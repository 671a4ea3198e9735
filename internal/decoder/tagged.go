package decoder

import (
	"cmp"
	"slices"
	"time"

	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/models"
	"go.uber.org/zap"
)

// directKey labels diagnostics for values that were not reached through a key.
const directKey = "(value)"

// Tagged decodes values out of attribute-value containers.
// The zero value is ready to use and logs through Logger.
type Tagged struct {
	log *zap.Logger
}

// NewTagged returns a Tagged decoder configured by opts.
func NewTagged(opts ...Option) Tagged {
	o := buildOptions(opts)
	return Tagged{log: o.log}
}

func (t Tagged) policy() policy {
	return policy{log: t.log, model: "tagged"}
}

// scalar describes one target type: the wire tag that carries it and how
// to convert that tag's payload text.
type scalar[T any] struct {
	op   string
	tag  models.Tag
	conv converter[T]
}

var (
	stringScalar    = scalar[string]{op: "String", tag: models.TagS, conv: toString}
	intScalar       = scalar[int]{op: "Int", tag: models.TagN, conv: toInt}
	floatScalar     = scalar[float32]{op: "Float", tag: models.TagN, conv: toFloat}
	doubleScalar    = scalar[float64]{op: "Double", tag: models.TagN, conv: toDouble}
	bigNumberScalar = scalar[models.BigNumber]{op: "BigNumber", tag: models.TagN, conv: toBigNumber}
	boolScalar      = scalar[bool]{op: "Bool", tag: models.TagBool, conv: toBool}
	timeScalar      = scalar[time.Time]{op: "Time", tag: models.TagS, conv: toTime}
)

// lookup finds key in c and decodes it. An M value at key is followed and
// the same key is looked up inside it.
func lookup[T any](p policy, s scalar[T], c models.Container, key string, def T) T {
	v, ok := c[key]
	if !ok {
		return fallback(p, s.op, errors.NewMissingKeyError(key), def)
	}
	if v.Tag() == models.TagM {
		return lookup(p, s, v.Map(), key, def)
	}
	return unwrap(p, s, key, v, def)
}

// unwrap dispatches on the tag of a single value.
func unwrap[T any](p policy, s scalar[T], key string, v models.AttributeValue, def T) T {
	switch v.Tag() {
	case s.tag:
		return convert(p, s, key, v.Text(), def)
	case models.TagNull:
		return fallback(p, s.op, errors.NewTagMismatchError(key, s.tag.String(), v.Tag().String()), def)
	case models.TagM:
		return fallback(p, s.op, errors.NewMalformedNestingError(key, "nested map has no key to follow"), def)
	}
	if text, ok := directText(v); ok {
		return convert(p, s, key, text, def)
	}
	return fallback(p, s.op, errors.NewTagMismatchError(key, s.tag.String(), v.Tag().String()), def)
}

func convert[T any](p policy, s scalar[T], key, text string, def T) T {
	out, err := s.conv(text)
	if err != nil {
		return fallback(p, s.op, errors.NewParseFailureError(key, text, err), def)
	}
	return out
}

// directText is the last resort for a value whose tag does not match:
// the payload of an S value, or the text of an untagged scalar.
func directText(v models.AttributeValue) (string, bool) {
	switch v.Tag() {
	case models.TagS:
		return v.Text(), true
	case models.TagUnknown:
		return models.ScalarText(v.Raw())
	}
	return "", false
}

// String decodes an S value at key.
func (t Tagged) String(c models.Container, key string, def string) string {
	return lookup(t.policy(), stringScalar, c, key, def)
}

// Int decodes an N value at key as an int.
func (t Tagged) Int(c models.Container, key string, def int) int {
	return lookup(t.policy(), intScalar, c, key, def)
}

// Float decodes an N value at key as a float32.
func (t Tagged) Float(c models.Container, key string, def float32) float32 {
	return lookup(t.policy(), floatScalar, c, key, def)
}

// Double decodes an N value at key as a float64.
func (t Tagged) Double(c models.Container, key string, def float64) float64 {
	return lookup(t.policy(), doubleScalar, c, key, def)
}

// BigNumber decodes an N value at key without losing precision or range.
func (t Tagged) BigNumber(c models.Container, key string, def models.BigNumber) models.BigNumber {
	return lookup(t.policy(), bigNumberScalar, c, key, def)
}

// Bool decodes a BOOL value at key.
func (t Tagged) Bool(c models.Container, key string, def bool) bool {
	return lookup(t.policy(), boolScalar, c, key, def)
}

// Time decodes an S value at key as a timestamp in UTC.
func (t Tagged) Time(c models.Container, key string, def time.Time) time.Time {
	return lookup(t.policy(), timeScalar, c, key, def)
}

// StringValue decodes a value that has already been extracted, e.g. a
// list item.
func (t Tagged) StringValue(v models.AttributeValue, def string) string {
	return unwrap(t.policy(), stringScalar, directKey, v, def)
}

func (t Tagged) IntValue(v models.AttributeValue, def int) int {
	return unwrap(t.policy(), intScalar, directKey, v, def)
}

func (t Tagged) FloatValue(v models.AttributeValue, def float32) float32 {
	return unwrap(t.policy(), floatScalar, directKey, v, def)
}

func (t Tagged) DoubleValue(v models.AttributeValue, def float64) float64 {
	return unwrap(t.policy(), doubleScalar, directKey, v, def)
}

func (t Tagged) BigNumberValue(v models.AttributeValue, def models.BigNumber) models.BigNumber {
	return unwrap(t.policy(), bigNumberScalar, directKey, v, def)
}

func (t Tagged) BoolValue(v models.AttributeValue, def bool) bool {
	return unwrap(t.policy(), boolScalar, directKey, v, def)
}

// List returns the items of the L value at key in their original order,
// undecoded. It returns an empty slice when key is absent or not a list.
func (t Tagged) List(c models.Container, key string) []models.AttributeValue {
	v, ok := c[key]
	if !ok {
		return fallback(t.policy(), "List", errors.NewMissingKeyError(key), []models.AttributeValue{})
	}
	if v.Tag() != models.TagL {
		return fallback(t.policy(), "List", errors.NewTagMismatchError(key, models.TagL.String(), v.Tag().String()), []models.AttributeValue{})
	}
	return slices.Clone(v.List())
}

// Dictionary returns the M value at key together with its keys, sorted.
// It returns an empty map and no keys when key is absent or not a map.
func (t Tagged) Dictionary(c models.Container, key string) (models.Container, []string) {
	v, ok := c[key]
	if !ok {
		fallback(t.policy(), "Dictionary", errors.NewMissingKeyError(key), 0)
		return models.Container{}, []string{}
	}
	if v.Tag() != models.TagM {
		fallback(t.policy(), "Dictionary", errors.NewMalformedNestingError(key, "value is not a map"), 0)
		return models.Container{}, []string{}
	}
	return v.Map(), sortedKeys(v.Map())
}

// Member unwraps the M value at key. When key is absent, c itself is
// returned unchanged so that callers can address either a wrapper or its
// contents with the same code. A present value that is not a map yields nil.
func (t Tagged) Member(c models.Container, key string) models.Container {
	v, ok := c[key]
	if !ok {
		return c
	}
	if v.Tag() != models.TagM {
		return fallback[models.Container](t.policy(), "Member", errors.NewMalformedNestingError(key, "value is not a map"), nil)
	}
	return v.Map()
}

// MemberOf returns the children of v when it is an M value, or nil.
func (t Tagged) MemberOf(v models.AttributeValue) models.Container {
	if v.Tag() != models.TagM {
		return nil
	}
	return v.Map()
}

// InDate returns the inDate string of rows[idx]. The backend uses inDate
// as the row identifier for later updates.
func (t Tagged) InDate(rows []models.Container, idx int) string {
	if idx < 0 || idx >= len(rows) {
		return fallback(t.policy(), "InDate", errors.NewMalformedNestingError("inDate", "row index out of range"), "")
	}
	return t.String(rows[idx], "inDate", "")
}

// sortedKeys returns the keys of m in ascending order (nil when m is empty).
func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	var keys []K
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
