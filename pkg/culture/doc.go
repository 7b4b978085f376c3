// Package culture models the culture expressions used to pick localized resources.
//
// An Expression is a language ("en"), a language with a region ("en-US"), or a
// language with the "any region" wildcard ("en-*", displayed as "en"). Expressions
// are immutable values; they compare and sort by their canonical display name.
//
//	en, _ := culture.Parse("EN-us") // en-US
//	en.RemoveRegion().DisplayName() // "en"
//
// Option is the process-wide registry of the default culture and the supported
// cultures. It answers wildcard-aware support questions:
//
//	opt := culture.MustNewOption("en", []string{"en", "fr-FR"})
//	opt.IsSupported(culture.MustParse("en-GB")) // true, "en" covers every region
//	opt.IsSupported(culture.MustParse("fr-CA")) // false, only fr-FR is supported
//
// This is not a BCP-47 implementation. Script subtags and extensions are not
// representable; Tag and FromTag convert to and from golang.org/x/text/language
// for callers that need the full model.
package culture
