package culture

import (
	"fmt"
	"slices"
)

// Option holds the default culture and the set of supported cultures.
// It is built once at startup and is read-only afterwards, so a single
// instance can be shared by all request goroutines without locking.
type Option struct {
	defaultCulture Expression
	supported      []Expression
}

// NewOption parses the default culture and the supported cultures.
// Supported cultures are deduplicated and kept sorted by display name.
//
// Example:
//
//	opt, err := culture.NewOption("en", []string{"en", "fr-FR", "de-*"})
func NewOption(defaultCulture string, supported []string) (*Option, error) {
	if defaultCulture == "" {
		return nil, ErrNoDefault
	}

	def, err := Parse(defaultCulture)
	if err != nil {
		return nil, fmt.Errorf("default culture: %w", err)
	}

	list := make([]Expression, 0, len(supported))
	for _, s := range supported {
		e, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("supported culture: %w", err)
		}
		list = append(list, e)
	}

	slices.SortFunc(list, Expression.Compare)
	list = slices.CompactFunc(list, Expression.Equal)

	return &Option{defaultCulture: def, supported: list}, nil
}

// MustNewOption is like NewOption but panics on error.
func MustNewOption(defaultCulture string, supported []string) *Option {
	o, err := NewOption(defaultCulture, supported)
	if err != nil {
		panic(err)
	}
	return o
}

// Default returns the configured default culture.
func (o *Option) Default() Expression { return o.defaultCulture }

// Supported returns a copy of the supported cultures in sorted order.
func (o *Option) Supported() []Expression { return slices.Clone(o.supported) }

// IsSupported reports whether c is covered by the supported set.
//
// A wildcard request is supported if any entry shares its language.
// A specific request is supported by an exact language+region entry,
// or by a wildcard entry with the same language.
func (o *Option) IsSupported(c Expression) bool {
	_, ok := o.Match(c)
	return ok
}

// Match returns the supported entry that covers c.
// For a wildcard request this is the first entry, in sorted order, sharing the language.
// For a specific request an exact entry is preferred over a wildcard entry of the language.
func (o *Option) Match(c Expression) (Expression, bool) {
	if c.IsZero() {
		return Expression{}, false
	}

	if c.IsAllRegion() {
		for _, s := range o.supported {
			if s.language == c.language {
				return s, true
			}
		}
		return Expression{}, false
	}

	var wildcard Expression
	for _, s := range o.supported {
		if s.language != c.language {
			continue
		}
		if s.region == c.region {
			return s, true
		}
		if s.IsAllRegion() && wildcard.IsZero() {
			wildcard = s
		}
	}

	return wildcard, !wildcard.IsZero()
}
