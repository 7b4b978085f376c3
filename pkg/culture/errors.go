package culture

import "errors"

var (
	ErrInvalidFormat     = errors.New("culture: invalid culture format")
	ErrNoDefault         = errors.New("culture: default culture is required")
	ErrUndefinedTag      = errors.New("culture: language tag has no two-letter base")
	ErrUnsupportedRegion = errors.New("culture: language tag region is not a two-letter code")
)
