package decoder

import (
	"fmt"

	"github.com/mcncl/gamedata/internal/errors"
	"github.com/mcncl/gamedata/internal/models"
)

// Variant is an enum member that knows its wire name.
type Variant interface {
	comparable
	fmt.Stringer
}

// EnumSet is a name-to-variant table for one enum type. Build it once,
// next to the enum declaration:
//
//	var rankDates = decoder.NewEnumSet(Day, Week, Month, Infinity, Custom)
type EnumSet[E Variant] struct {
	byName    map[string]E
	normalize func(string) string
}

// NewEnumSet indexes variants by their String form. Later variants with a
// duplicate name replace earlier ones.
func NewEnumSet[E Variant](variants ...E) EnumSet[E] {
	byName := make(map[string]E, len(variants))
	for _, v := range variants {
		byName[v.String()] = v
	}
	return EnumSet[E]{byName: byName}
}

// WithNormalizer returns a copy of s that rewrites wire names with fn
// before matching, for backends that send "week" where the variant is Week.
func (s EnumSet[E]) WithNormalizer(fn func(string) string) EnumSet[E] {
	s.normalize = fn
	return s
}

// Lookup matches name exactly, case included, after normalization.
func (s EnumSet[E]) Lookup(name string) (E, bool) {
	if s.normalize != nil {
		name = s.normalize(name)
	}
	v, ok := s.byName[name]
	return v, ok
}

// Len returns the number of named variants.
func (s EnumSet[E]) Len() int { return len(s.byName) }

// Enum decodes key as a variant of set. An absent key or a name that
// matches no variant yields the zero member of E.
func Enum[E Variant](f Flat, c models.FlatObject, key string, set EnumSet[E]) E {
	var zero E
	return EnumOr(f, c, key, set, zero)
}

// EnumOr is Enum with an explicit default.
func EnumOr[E Variant](f Flat, c models.FlatObject, key string, set EnumSet[E], def E) E {
	name, appErr := f.text(c, key)
	if appErr != nil {
		return fallback(f.policy(), "Enum", appErr, def)
	}
	v, ok := set.Lookup(name)
	if !ok {
		return fallback(f.policy(), "Enum", errors.NewParseFailureError(key, name, fmt.Errorf("no variant named %q", name)), def)
	}
	return v
}
