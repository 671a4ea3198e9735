package models

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// JSONValue is a generic type to represent any untagged JSON value.
// This can be a string, json.Number, boolean, nil, FlatObject, or FlatArray.
type JSONValue interface{}

// FlatObject is a JSON object whose values are plain scalars or nested
// flat values, as produced by flattening tagged attribute values.
type FlatObject map[string]JSONValue

// FlatArray is a JSON array of flat values.
type FlatArray []JSONValue

// BigNumber is the arbitrary-precision decimal used for quantities that
// overflow float64.
type BigNumber = decimal.Decimal

// Tag identifies which member of an AttributeValue is active.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagNull
	TagS
	TagN
	TagBool
	TagM
	TagL
)

var tagNames = [...]string{
	TagUnknown: "?",
	TagNull:    "NULL",
	TagS:       "S",
	TagN:       "N",
	TagBool:    "BOOL",
	TagM:       "M",
	TagL:       "L",
}

// String returns the wire key of the tag.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return tagNames[TagUnknown]
}

// TagFromKey maps a wire key to its Tag. Unrecognized keys map to TagUnknown.
func TagFromKey(key string) Tag {
	switch key {
	case "NULL":
		return TagNull
	case "S":
		return TagS
	case "N":
		return TagN
	case "BOOL":
		return TagBool
	case "M":
		return TagM
	case "L":
		return TagL
	}
	return TagUnknown
}

// Container is the top-level Map every tagged decode operation reads from.
type Container map[string]AttributeValue

// AttributeValue is a single tagged attribute. Exactly one tag is active.
// Values are immutable once constructed.
type AttributeValue struct {
	tag  Tag
	text string
	m    Container
	l    []AttributeValue
	raw  JSONValue
}

// Null returns the explicit absence marker.
func Null() AttributeValue { return AttributeValue{tag: TagNull} }

// Str wraps a string payload.
func Str(text string) AttributeValue { return AttributeValue{tag: TagS, text: text} }

// Num wraps unparsed numeric text. Parsing is deferred to the getter.
func Num(rawText string) AttributeValue { return AttributeValue{tag: TagN, text: rawText} }

// Bool wraps a boolean.
func Bool(flag bool) AttributeValue {
	if flag {
		return AttributeValue{tag: TagBool, text: "true"}
	}
	return AttributeValue{tag: TagBool, text: "false"}
}

// BoolText wraps a boolean payload as it appeared on the wire, e.g. "true".
func BoolText(rawText string) AttributeValue { return AttributeValue{tag: TagBool, text: rawText} }

// Map wraps a nested container.
func Map(children Container) AttributeValue {
	if children == nil {
		children = Container{}
	}
	return AttributeValue{tag: TagM, m: children}
}

// List wraps an ordered sequence of values.
func List(items ...AttributeValue) AttributeValue {
	if items == nil {
		items = []AttributeValue{}
	}
	return AttributeValue{tag: TagL, l: items}
}

// Unknown keeps a value that carried no recognized tag. raw is the plain
// JSON value (string, json.Number, bool, nil, FlatObject or FlatArray).
func Unknown(raw JSONValue) AttributeValue { return AttributeValue{tag: TagUnknown, raw: raw} }

// Tag returns the active tag.
func (v AttributeValue) Tag() Tag { return v.tag }

// Text returns the payload of S, N and BOOL values, and "" otherwise.
func (v AttributeValue) Text() string { return v.text }

// Map returns the children of an M value, or nil.
func (v AttributeValue) Map() Container { return v.m }

// List returns the items of an L value, or nil.
func (v AttributeValue) List() []AttributeValue { return v.l }

// Raw returns the untagged JSON value held by an Unknown value.
func (v AttributeValue) Raw() JSONValue { return v.raw }

// IsNull reports whether v is the explicit NULL marker.
func (v AttributeValue) IsNull() bool { return v.tag == TagNull }

// ScalarText returns the text form of an untagged JSON scalar. Objects,
// arrays and null report false.
func ScalarText(v JSONValue) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	}
	return "", false
}
