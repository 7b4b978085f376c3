// Package codematch looks up display names of codes (countries, currencies,
// product categories) from culture-specific string tables.
//
// String tables live in a resource directory and follow the same culture
// naming convention as any other resource, so "Strings/countries.fr.json",
// "Strings/fr-CA/countries.json" and "Strings/common.fr.yaml" all contribute
// to a "fr-CA" request. All tables found for a culture are merged into one
// tree; on conflicting keys the more specific table wins.
//
//	m := codematch.New(resolver, p, codematch.WithExtensions("json", "yaml"))
//	name := m.DisplayName(ctx, culture.MustParse("fr-CA"), "US", "United States")
//
// Types implementing CodedItem can be filled in place:
//
//	codematch.MatchAll(ctx, m, culture.MustParse("de"), countries)
package codematch
