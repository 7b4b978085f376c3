// Package content holds the structured content tree used for string tables.
//
// A document (JSON or YAML) is decoded into a [Node] tree of maps, lists and
// scalars. Trees from several files are layered with [Merge]: maps merge
// key by key, lists concatenate, and any other value from the higher
// priority tree wins. Values are read with dotted paths:
//
//	low, _ := content.JSON{}.Parse(strings.NewReader(`{"k1":{"name":"Hello"}}`))
//	high, _ := content.JSON{}.Parse(strings.NewReader(`{"k1":{"name":"Bonjour"}}`))
//	name, ok := content.Merge(low, high).Lookup("k1.name") // "Bonjour", true
//
// A null value at the end of a path is reported as not found.
package content
