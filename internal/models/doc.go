// Package models defines domain entities shared across the mixgen pipeline and service layers.
//
// The package contains two categories of types:
//
// 1. Pipeline output types:
//   - [Song] : Canonical normalized song record with safe defaults
//   - [Playlist] : Ordered, never-empty sequence of songs from a successful run
//
// 2. External service types:
//   - [Track] : A search hit from a music service, used during enrichment
//   - [RemotePlaylist] : Result of creating a playlist on a music service
//
// Songs travel from the resilient parser through normalization and enrichment
// without ever being nil; malformed source records are repaired with defaults
// or dropped before a Song is constructed.
package models
