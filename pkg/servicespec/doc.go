// Package servicespec loads and validates declarative service definitions.
// A service spec names the services to generate dashboards for, each with a
// backend selector, technology tags, and optional metric overrides.
package servicespec
