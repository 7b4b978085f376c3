package culture

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage returns the cultures named by an Accept-Language header,
// ordered by descending quality. Entries that are not culture tokens
// ("*", "zh-Hant-TW", "x-klingon") and entries with q=0 are skipped.
//
// Example header: "fr-CA,fr;q=0.9,en;q=0.8,*;q=0.5"
// Returns: [fr-CA fr en]
func ParseAcceptLanguage(header string) []Expression {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weightedTag
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" || quality == 0 {
			continue
		}
		tags = append(tags, weightedTag{tag: langPart, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	result := make([]Expression, 0, len(tags))
	for _, t := range tags {
		if e, ok := TryParse(t.tag); ok {
			result = append(result, e)
		}
	}
	return result
}

// Negotiate picks the highest-quality culture from an Accept-Language header
// that the option supports. The returned expression is the requested one,
// not the supported entry that covers it, so "en-GB" stays "en-GB" when "en" is supported.
func (o *Option) Negotiate(header string) (Expression, bool) {
	for _, c := range ParseAcceptLanguage(header) {
		if o.IsSupported(c) {
			return c, true
		}
	}
	return Expression{}, false
}
