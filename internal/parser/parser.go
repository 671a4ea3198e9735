package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/gamedata/internal/errors" // Custom errors package
	"github.com/mcncl/gamedata/internal/models"
	"github.com/tidwall/gjson"
)

// decodeObject reads exactly one JSON object from reader. Numbers are kept
// as json.Number so that no precision is lost before a getter asks for a
// concrete type.
func decodeObject(reader io.Reader) (map[string]interface{}, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var root interface{}
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("failed to decode JSON: %v", err), errors.ErrInvalidJSON)
	}

	// Only whitespace may follow the first value.
	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
			}
		} else {
			return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	obj, ok := root.(map[string]interface{})
	if !ok {
		return nil, errors.NewParsingError(fmt.Sprintf("root is %s", describe(root)), errors.ErrNotObject)
	}
	return obj, nil
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}

// ParseTagged reads a JSON object in attribute-value form into a Container.
func ParseTagged(reader io.Reader) (models.Container, error) {
	obj, err := decodeObject(reader)
	if err != nil {
		return nil, err
	}
	return toContainer(obj), nil
}

// ParseFlat reads a flattened JSON object.
func ParseFlat(reader io.Reader) (models.FlatObject, error) {
	obj, err := decodeObject(reader)
	if err != nil {
		return nil, err
	}
	return normalizeJSONValue(obj).(models.FlatObject), nil
}

// ParseTaggedString parses tagged JSON from a string
func ParseTaggedString(jsonString string) (models.Container, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseTagged(strings.NewReader(jsonString))
}

// ParseFlatString parses flat JSON from a string
func ParseFlatString(jsonString string) (models.FlatObject, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseFlat(strings.NewReader(jsonString))
}

// normalizeJSONValue converts raw JSON types into the flat model types
func normalizeJSONValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.FlatObject, len(v))
		for key, value := range v {
			obj[key] = normalizeJSONValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.FlatArray, len(v))
		for i, value := range v {
			arr[i] = normalizeJSONValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, boolean, nil) are returned as is
	}
}

func toContainer(obj map[string]interface{}) models.Container {
	c := make(models.Container, len(obj))
	for key, value := range obj {
		c[key] = Attribute(value)
	}
	return c
}

// Attribute converts one decoded JSON value into an AttributeValue. An
// object with a single recognized tag key becomes that tag; anything else
// is kept as an Unknown value holding the flat form of raw.
func Attribute(raw interface{}) models.AttributeValue {
	obj, ok := raw.(map[string]interface{})
	if !ok || len(obj) != 1 {
		return models.Unknown(normalizeJSONValue(raw))
	}

	for key, payload := range obj {
		switch models.TagFromKey(key) {
		case models.TagNull:
			return models.Null()
		case models.TagS:
			if text, ok := models.ScalarText(payload); ok {
				return models.Str(text)
			}
		case models.TagN:
			if text, ok := models.ScalarText(payload); ok {
				return models.Num(text)
			}
		case models.TagBool:
			if text, ok := models.ScalarText(payload); ok {
				return models.BoolText(text)
			}
		case models.TagM:
			if children, ok := payload.(map[string]interface{}); ok {
				return models.Map(toContainer(children))
			}
		case models.TagL:
			if items, ok := payload.([]interface{}); ok {
				list := make([]models.AttributeValue, len(items))
				for i, item := range items {
					list[i] = Attribute(item)
				}
				return models.List(list...)
			}
		}
	}
	return models.Unknown(normalizeJSONValue(raw))
}

// TaggedRows selects the array at path (gjson syntax, e.g. "rows" or
// "data.elements") and parses each element as a tagged Container. An empty
// path selects the root.
func TaggedRows(data []byte, path string) ([]models.Container, error) {
	var rows []models.Container
	err := eachRow(data, path, func(raw string) error {
		c, err := ParseTaggedString(raw)
		if err != nil {
			return err
		}
		rows = append(rows, c)
		return nil
	})
	return rows, err
}

// FlatRows is TaggedRows for flattened rows.
func FlatRows(data []byte, path string) ([]models.FlatObject, error) {
	var rows []models.FlatObject
	err := eachRow(data, path, func(raw string) error {
		obj, err := ParseFlatString(raw)
		if err != nil {
			return err
		}
		rows = append(rows, obj)
		return nil
	})
	return rows, err
}

func eachRow(data []byte, path string, fn func(raw string) error) error {
	if !gjson.ValidBytes(data) {
		return errors.NewParsingError("envelope is not valid JSON", errors.ErrInvalidJSON)
	}

	var result gjson.Result
	if path == "" {
		result = gjson.ParseBytes(data)
	} else {
		result = gjson.GetBytes(data, path)
	}
	if !result.IsArray() {
		return errors.NewParsingError(fmt.Sprintf("path %q", path), errors.ErrPathNotArray)
	}

	var rowErr error
	index := 0
	result.ForEach(func(_, row gjson.Result) bool {
		if err := fn(row.Raw); err != nil {
			rowErr = errors.NewParsingError(fmt.Sprintf("row %d at %q", index, path), err)
			return false
		}
		index++
		return true
	})
	return rowErr
}

// ReadFile reads a JSON file after checking that it exists and is not empty.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	return data, nil
}
