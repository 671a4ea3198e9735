// Package decoder turns loosely typed backend JSON into typed game values.
//
// Two decoders share one contract. Tagged reads the attribute-value wire
// format ({"N":"1"}, {"S":"a"}, {"BOOL":true}, {"NULL":true}, {"M":{}},
// {"L":[]}); Flat reads JSON that has already been flattened to plain
// scalars and understands the percent convention ("45%" is 0.45).
//
// No getter ever fails. A missing key, a tag that cannot produce the
// requested type, unparseable text, or a structure of the wrong shape all
// resolve to the default the caller passed in. Each substitution is logged
// at debug level so that bad upstream data can still be traced.
package decoder

import (
	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/models"
	"go.uber.org/zap"
)

// Decoder is implemented once per value model, with one method per
// target type.
type Decoder[C any] interface {
	String(c C, key string, def string) string
	Int(c C, key string, def int) int
	Float(c C, key string, def float32) float32
	Double(c C, key string, def float64) float64
	Bool(c C, key string, def bool) bool
}

var (
	_ Decoder[models.Container]  = Tagged{}
	_ Decoder[models.FlatObject] = Flat{}
)

// Option configures a decoder.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes fallback diagnostics to l instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// policy is the defaulting contract shared by both decoders.
type policy struct {
	log *zap.Logger
	// model names the decoder in diagnostics: "tagged" or "flat".
	model string
}

func (p policy) logger() *zap.Logger {
	if p.log != nil {
		return p.log
	}
	return Logger()
}

// fallback records why def is being returned and hands it back.
func fallback[T any](p policy, op string, err *errors.AppError, def T) T {
	p.logger().Debug("decode fell back to default",
		zap.String("decoder", p.model),
		zap.String("op", op),
		zap.String("reason", string(err.Type)),
		zap.Any("default", def),
		zap.Error(err))
	return def
}
