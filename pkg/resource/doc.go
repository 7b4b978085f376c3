// Package resource resolves culture-specific resource files by naming convention.
//
// A resource is addressed by directory, logical name and extension. Its culture
// variants live either in the file name or in a culture directory:
//
//	Views/page.en-US.html
//	Views/en-US/page.html
//	Views/page.en.html
//	Views/en/page.html
//	Views/page.html          culture-neutral fallback
//
// Resolver runs the search against a provider.Provider; Cached memoizes it in
// two-level caches partitioned by requested culture.
//
// Basic usage:
//
//	opt := culture.MustNewOption("en", []string{"en", "fr"})
//	res := resource.NewCached(resource.NewResolver(provider.NewFS(os.DirFS("content")), opt))
//
//	info, err := res.Resolve(ctx, "Views", "page", "html", culture.MustParse("fr-CA"))
//	if err != nil {
//		return err
//	}
//	if info == nil {
//		// no variant and no neutral file
//	}
//
//	files, err := res.Enumerate(ctx, "Strings", "json", culture.MustParse("fr-CA"))
package resource
