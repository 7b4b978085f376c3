package culture

import (
	"fmt"
	"strings"
)

// AllRegions is the region token of an expression that matches any region of its language.
const AllRegions = "*"

// Expression is an immutable culture value: a language, or a language with a region,
// or a language with the "any region" wildcard.
//
// The zero value represents "no culture" and is reported by IsZero.
type Expression struct {
	language    string
	region      string
	displayName string
}

// Parse parses a culture string in one of the accepted shapes:
//
//	"en"     language only (wildcard region)
//	"en-*"   language with explicit wildcard region
//	"en-US"  language and region
//
// Language is lowercased and region uppercased, so "EN-us" parses to "en-US".
// Any other shape returns an error wrapping ErrInvalidFormat.
func Parse(s string) (Expression, error) {
	switch {
	case len(s) == 2:
		return newExpression(s, AllRegions), nil
	case len(s) == 4 && strings.HasSuffix(s, "-*"):
		return newExpression(s[:2], AllRegions), nil
	case len(s) == 5 && s[2] == '-':
		return newExpression(s[:2], s[3:]), nil
	}
	return Expression{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// TryParse is the non-failing variant of Parse used when a string may or may not be a
// culture token, e.g. the first segment of a URL path or a file name component.
// Besides the shapes accepted by Parse it also accepts "_" as the separator ("en_US").
func TryParse(s string) (Expression, bool) {
	if len(s) == 5 && s[2] == '_' {
		return newExpression(s[:2], s[3:]), true
	}
	e, err := Parse(s)
	if err != nil {
		return Expression{}, false
	}
	return e, true
}

// MustParse is like Parse but panics on error.
// Use it for static culture tables.
func MustParse(s string) Expression {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func newExpression(language, region string) Expression {
	language = strings.ToLower(language)
	region = strings.ToUpper(region)

	display := language
	if region != AllRegions {
		display = language + "-" + region
	}

	return Expression{
		language:    language,
		region:      region,
		displayName: display,
	}
}

// Language returns the lowercased two-letter language code.
func (e Expression) Language() string { return e.language }

// Region returns the uppercased region code, or AllRegions for a wildcard expression.
func (e Expression) Region() string { return e.region }

// IsAllRegion reports whether the expression matches any region of its language.
func (e Expression) IsAllRegion() bool { return e.region == AllRegions }

// IsZero reports whether e is the zero value ("no culture").
func (e Expression) IsZero() bool { return e.language == "" }

// DisplayName returns the canonical form: "en" for wildcard expressions, "en-US" otherwise.
func (e Expression) DisplayName() string { return e.displayName }

// String implements fmt.Stringer.
func (e Expression) String() string { return e.displayName }

// RemoveRegion returns the wildcard-region expression for the same language.
// It is a no-op for expressions that are already wildcard.
func (e Expression) RemoveRegion() Expression {
	if e.IsAllRegion() || e.IsZero() {
		return e
	}
	return newExpression(e.language, AllRegions)
}

// Equal reports whether both expressions have the same display name.
func (e Expression) Equal(other Expression) bool {
	return e.displayName == other.displayName
}

// Compare orders expressions by display name.
// It returns -1, 0 or +1 and is suitable for slices.SortFunc.
func (e Expression) Compare(other Expression) int {
	return strings.Compare(e.displayName, other.displayName)
}

// MarshalText implements encoding.TextMarshaler.
func (e Expression) MarshalText() ([]byte, error) {
	return []byte(e.displayName), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty input yields the zero expression.
func (e *Expression) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*e = Expression{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
