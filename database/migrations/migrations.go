// Package migrations holds the shop schema. Each migration registers itself
// from init(); cmd/shopdata and the ingestor blank-import or import this
// package so the registry is populated before the runner starts.
package migrations
