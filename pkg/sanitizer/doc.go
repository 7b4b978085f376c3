// Package sanitizer cleans HTML produced from localized content before it is
// served, using github.com/microcosm-cc/bluemonday policies.
package sanitizer
