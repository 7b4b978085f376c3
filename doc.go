// Package localize resolves culture-specific resources by naming convention
// and caches the results.
//
// A Localizer ties together the culture registry, a content root, the cached
// resource resolver and the string table matcher:
//
//	l, err := localize.New(localize.Config{
//		DefaultCulture:    "en",
//		SupportedCultures: []string{"en", "fr-FR"},
//		ContentRoot:       "./content",
//	})
//	if err != nil {
//		return err
//	}
//
//	info, err := l.Resolve(ctx, "Views", "index", "html", culture.MustParse("fr-CA"))
//	name := l.DisplayName(ctx, culture.MustParse("fr-FR"), "DE", "Germany")
//
// Resolution falls back from the requested culture to the default culture and
// finally to the culture-neutral file. Results are cached per requested culture
// until Clear or ClearAll is called.
package localize
