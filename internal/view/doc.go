// Package view renders culture-resolved markdown views as HTML pages.
//
// A view is a markdown file with an optional YAML frontmatter block:
//
//	---
//	title: À propos
//	---
//	# Bonjour
//
// The body is converted with goldmark (GitHub flavored), sanitized and
// wrapped in a layout template. Parsed views are cached by their relative
// path, so a view shared by several cultures is parsed once.
package view
