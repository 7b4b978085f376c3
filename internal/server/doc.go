// Package server exposes a localize.Localizer over HTTP: markdown views
// resolved by culture, string table lookups, resource listings and health
// endpoints. Run serves a handler with graceful shutdown.
package server
