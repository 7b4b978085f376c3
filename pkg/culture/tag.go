package culture

import (
	"fmt"

	"golang.org/x/text/language"
)

// Tag converts the expression to an x/text language tag.
// Wildcard expressions map to the bare language tag; the zero expression maps to language.Und.
func (e Expression) Tag() language.Tag {
	if e.IsZero() {
		return language.Und
	}
	if e.IsAllRegion() {
		return language.Make(e.language)
	}
	return language.Make(e.displayName)
}

// FromTag converts an x/text language tag to an expression.
// A region is kept only when the tag states it explicitly; inferred regions
// ("en" is likely "en-US") are dropped so the result stays a wildcard.
// Script subtags and extensions are ignored.
func FromTag(tag language.Tag) (Expression, error) {
	base, conf := tag.Base()
	if conf != language.Exact || len(base.String()) != 2 {
		return Expression{}, fmt.Errorf("%w: %s", ErrUndefinedTag, tag)
	}

	region, conf := tag.Region()
	if conf != language.Exact {
		return newExpression(base.String(), AllRegions), nil
	}
	if !region.IsCountry() || len(region.String()) != 2 {
		return Expression{}, fmt.Errorf("%w: %s", ErrUnsupportedRegion, tag)
	}

	return newExpression(base.String(), region.String()), nil
}
