package resource

import (
	"strings"

	"github.com/dmitrymomot/localize/pkg/culture"
)

// FileInfo describes a resolved resource file.
type FileInfo struct {
	// RelativePath is the slash-separated path from the content root,
	// e.g. "Views/fr/page.html".
	RelativePath string `json:"relative_path"`

	// FileName is the base name of the file, e.g. "page.en-US.html".
	FileName string `json:"file_name"`

	// Name is the logical name: the file name without culture and extension, e.g. "page".
	Name string `json:"name"`

	// Extension is the file extension without the leading dot, e.g. "html".
	Extension string `json:"extension"`

	// Culture is the culture the file was matched for.
	// It is the zero expression for a culture-neutral file.
	Culture culture.Expression `json:"culture"`
}

// HasCulture reports whether the file was matched for a culture
// rather than being the culture-neutral fallback.
func (f FileInfo) HasCulture() bool { return !f.Culture.IsZero() }

// normalizeExt strips a leading dot from an extension.
func normalizeExt(ext string) string { return strings.TrimPrefix(ext, ".") }

// parseToken parses a culture token found in a file or directory name.
// Only "ll" and "ll-RR" (or "ll_RR") made of ASCII letters are accepted;
// case is normalized, so "EN-us" parses to "en-US".
func parseToken(s string) (culture.Expression, bool) {
	switch len(s) {
	case 2:
		if !isLetters(s) {
			return culture.Expression{}, false
		}
	case 5:
		if !isLetters(s[:2]) || !isLetters(s[3:]) {
			return culture.Expression{}, false
		}
	default:
		return culture.Expression{}, false
	}
	return culture.TryParse(s)
}

func isLetters(s string) bool {
	for i := range len(s) {
		c := s[i] | 0x20 // ASCII lowercase
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// splitFileName splits "name.token.ext" into its logical name and culture token.
// ok is false when the file does not have the extension; token is "" for "name.ext".
func splitFileName(fileName, ext string) (name, token string, ok bool) {
	base, found := strings.CutSuffix(fileName, "."+ext)
	if !found || base == "" {
		return "", "", false
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return base, "", true
	}
	if i == 0 {
		return "", "", false
	}
	return base[:i], base[i+1:], true
}
