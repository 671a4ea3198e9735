package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
	"github.com/mcncl/gamedata/internal/config"
	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/flatten"
	"github.com/mcncl/gamedata/internal/models"
	"github.com/mcncl/gamedata/internal/parser"
	"github.com/mcncl/gamedata/internal/records"
	"github.com/shopspring/decimal"
)

// GetCmd decodes one key of the input object.
type GetCmd struct {
	Key     string `arg:"" help:"Key to decode."`
	Type    string `help:"Target type." short:"t" enum:"string,int,float,double,bignumber,bool,time,list,keys" default:"string"`
	Default string `help:"Value returned when the key cannot be decoded." name:"default"`
}

func (g *GetCmd) Run(ctx *Context) error {
	data, err := ctx.readInput()
	if err != nil {
		return err
	}

	var out string
	if ctx.Config.Format == config.FormatFlat {
		obj, err := parser.ParseFlatString(string(data))
		if err != nil {
			return err
		}
		out, err = g.flat(decoder.NewFlat(), obj)
		if err != nil {
			return err
		}
	} else {
		c, err := parser.ParseTaggedString(string(data))
		if err != nil {
			return err
		}
		out, err = g.tagged(decoder.NewTagged(), c)
		if err != nil {
			return err
		}
	}
	return ctx.writeLine(out)
}

func (g *GetCmd) tagged(d decoder.Tagged, c models.Container) (string, error) {
	switch g.Type {
	case "bignumber":
		def, err := g.bigNumberDefault()
		if err != nil {
			return "", err
		}
		return d.BigNumber(c, g.Key, def).String(), nil
	case "time":
		def, err := g.timeDefault()
		if err != nil {
			return "", err
		}
		return formatTime(d.Time(c, g.Key, def)), nil
	case "list":
		return marshal(flatten.Value(models.List(d.List(c, g.Key)...)))
	case "keys":
		_, keys := d.Dictionary(c, g.Key)
		return strings.Join(keys, "\n"), nil
	}
	return getScalar[models.Container](d, c, g)
}

func (g *GetCmd) flat(d decoder.Flat, obj models.FlatObject) (string, error) {
	switch g.Type {
	case "bignumber":
		def, err := g.bigNumberDefault()
		if err != nil {
			return "", err
		}
		n, err := decimal.NewFromString(d.String(obj, g.Key, def.String()))
		if err != nil {
			return def.String(), nil
		}
		return n.String(), nil
	case "time":
		def, err := g.timeDefault()
		if err != nil {
			return "", err
		}
		return formatTime(d.Time(obj, g.Key, def)), nil
	case "list":
		return marshal(d.Array(obj, g.Key))
	case "keys":
		return strings.Join(sortedKeys(d.Object(obj, g.Key)), "\n"), nil
	}
	return getScalar[models.FlatObject](d, obj, g)
}

// getScalar handles the types both decoders share.
func getScalar[C any](d decoder.Decoder[C], c C, g *GetCmd) (string, error) {
	switch g.Type {
	case "int":
		def, err := parseDefault(g.Default, strconv.Atoi)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(d.Int(c, g.Key, def)), nil
	case "float":
		def, err := parseDefault(g.Default, func(s string) (float64, error) { return strconv.ParseFloat(s, 32) })
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(d.Float(c, g.Key, float32(def))), 'g', -1, 32), nil
	case "double":
		def, err := parseDefault(g.Default, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(d.Double(c, g.Key, def), 'g', -1, 64), nil
	case "bool":
		def, err := parseDefault(g.Default, strconv.ParseBool)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(d.Bool(c, g.Key, def)), nil
	}
	return d.String(c, g.Key, g.Default), nil
}

// parseDefault converts the --default flag; an empty flag means the zero value.
func parseDefault[T any](text string, parse func(string) (T, error)) (T, error) {
	var zero T
	if text == "" {
		return zero, nil
	}
	v, err := parse(text)
	if err != nil {
		return zero, errors.NewInputError(fmt.Sprintf("invalid --default %q", text), err)
	}
	return v, nil
}

func (g *GetCmd) bigNumberDefault() (models.BigNumber, error) {
	return parseDefault(g.Default, decimal.NewFromString)
}

func (g *GetCmd) timeDefault() (time.Time, error) {
	return parseDefault(g.Default, func(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) })
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// FlattenCmd converts tagged JSON to the flat shape.
type FlattenCmd struct {
	Rows bool `help:"Flatten the row array at the rows path instead of the whole object."`
}

func (f *FlattenCmd) Run(ctx *Context) error {
	data, err := ctx.readInput()
	if err != nil {
		return err
	}

	var v interface{}
	if f.Rows {
		rows, err := parser.TaggedRows(data, ctx.Config.Rows.Path)
		if err != nil {
			return err
		}
		v = flatten.Rows(rows)
	} else {
		c, err := parser.ParseTaggedString(string(data))
		if err != nil {
			return err
		}
		v = flatten.Container(c)
	}

	out, err := marshal(v)
	if err != nil {
		return err
	}
	return ctx.writeLine(out)
}

// DescribeCmd lists the keys of a tagged object.
type DescribeCmd struct{}

func (d *DescribeCmd) Run(ctx *Context) error {
	data, err := ctx.readInput()
	if err != nil {
		return err
	}
	c, err := parser.ParseTaggedString(string(data))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tFIELD\tTAG\tVALUE")
	for _, key := range sortedKeys(c) {
		v := c[key]
		text, err := render(flatten.Value(v))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, strcase.ToCamel(key), v.Tag(), text)
	}
	if err := w.Flush(); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

// render returns strings unquoted and everything else as JSON.
func render(v models.JSONValue) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.NewOutputError("failed to encode value", err)
	}
	return string(b), nil
}

// RowsCmd decodes envelope rows into records.
type RowsCmd struct {
	Kind        string `arg:"" help:"Record kind." enum:"notices,ranking-tables,user-rankings,guild-rankings,rewards,charts,gacha,posts"`
	ExtraColumn string `help:"Extra data column for user rankings." name:"extra-column"`
	PostType    string `help:"Mailbox of the posts: Admin, Rank, Coupon or User." name:"post-type" default:"Admin"`
}

func (r *RowsCmd) Run(ctx *Context) error {
	data, err := ctx.readInput()
	if err != nil {
		return err
	}

	v, err := r.decode(ctx.Config, data)
	if err != nil {
		return err
	}
	out, err := marshal(v)
	if err != nil {
		return err
	}
	return ctx.writeLine(out)
}

func (r *RowsCmd) decode(cfg *config.Config, data []byte) (interface{}, error) {
	d := decoder.NewFlat()

	switch r.Kind {
	case "notices":
		if cfg.Format != config.FormatTagged {
			return nil, errors.NewInputError("notices are read from tagged input", nil)
		}
		rows, err := parser.TaggedRows(data, cfg.Rows.Path)
		if err != nil {
			return nil, err
		}
		return records.DecodeNotices(decoder.NewTagged(), rows), nil
	case "posts":
		postType, ok := records.PostTypes.Lookup(r.PostType)
		if !ok {
			return nil, errors.NewInputError(fmt.Sprintf("unknown post type %q", r.PostType), nil)
		}
		envelope, err := flatObject(cfg, data)
		if err != nil {
			return nil, err
		}
		return records.DecodePosts(d, postType, envelope), nil
	}

	rows, err := flatRows(cfg, data)
	if err != nil {
		return nil, err
	}

	switch r.Kind {
	case "ranking-tables":
		return records.RankingTables(d, rows), nil
	case "user-rankings":
		out := make([]records.UserRanking, len(rows))
		for i, row := range rows {
			out[i] = records.DecodeUserRanking(d, row, r.ExtraColumn)
		}
		return out, nil
	case "guild-rankings":
		out := make([]records.GuildRanking, len(rows))
		for i, row := range rows {
			out[i] = records.DecodeGuildRanking(d, row)
		}
		return out, nil
	case "rewards":
		out := make([]records.RankingReward, len(rows))
		for i, row := range rows {
			out[i] = records.DecodeRankingReward(d, row)
		}
		return out, nil
	case "charts":
		return records.DecodeChartCards(d, rows), nil
	case "gacha":
		return records.IndexGachaCards(d, rows), nil
	}
	return nil, errors.NewInputError(fmt.Sprintf("unknown record kind %q", r.Kind), nil)
}

// flatRows reads the row array in whichever format the input uses,
// flattening tagged rows first.
func flatRows(cfg *config.Config, data []byte) ([]models.FlatObject, error) {
	if cfg.Format == config.FormatFlat {
		return parser.FlatRows(data, cfg.Rows.Path)
	}
	rows, err := parser.TaggedRows(data, cfg.Rows.Path)
	if err != nil {
		return nil, err
	}
	return flatten.Rows(rows), nil
}

func flatObject(cfg *config.Config, data []byte) (models.FlatObject, error) {
	if cfg.Format == config.FormatFlat {
		return parser.ParseFlatString(string(data))
	}
	c, err := parser.ParseTaggedString(string(data))
	if err != nil {
		return nil, err
	}
	return flatten.Container(c), nil
}

func marshal(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.NewOutputError("failed to encode JSON", err)
	}
	return string(b), nil
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
