// Package flatten strips the type tags from attribute values, producing the
// plain JSON shape the flat decoder reads.
package flatten

import (
	"encoding/json"

	"github.com/mcncl/gamedata/internal/models"
)

// Value flattens a single attribute value. N payloads become json.Number
// so that numeric text survives untouched; a BOOL payload that is not a
// boolean literal is kept as its original text.
func Value(v models.AttributeValue) models.JSONValue {
	switch v.Tag() {
	case models.TagNull:
		return nil
	case models.TagS:
		return v.Text()
	case models.TagN:
		return json.Number(v.Text())
	case models.TagBool:
		switch v.Text() {
		case "true":
			return true
		case "false":
			return false
		}
		return v.Text()
	case models.TagM:
		return Container(v.Map())
	case models.TagL:
		items := v.List()
		arr := make(models.FlatArray, len(items))
		for i, item := range items {
			arr[i] = Value(item)
		}
		return arr
	}
	return v.Raw()
}

// Container flattens every attribute of c.
func Container(c models.Container) models.FlatObject {
	obj := make(models.FlatObject, len(c))
	for key, v := range c {
		obj[key] = Value(v)
	}
	return obj
}

// Rows flattens a batch of rows, preserving their order.
func Rows(rows []models.Container) []models.FlatObject {
	out := make([]models.FlatObject, len(rows))
	for i, row := range rows {
		out[i] = Container(row)
	}
	return out
}
