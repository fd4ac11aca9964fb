// Package gen implements the playlist generation pipeline.
//
// The pipeline turns a seed song title into a normalized [models.Playlist] in
// five stages:
//
//  1. Prompt building: a deterministic instruction string asking the model for
//     a strict JSON array of similar songs ([BuildPrompt]).
//  2. Model invocation: delegated to a [Generator], typically the Gemini
//     client in internal/services.
//  3. Sanitization: best-effort cleanup of formatting noise in the raw model
//     text ([Sanitize]). The output may still be invalid JSON.
//  4. Resilient parsing: whole-array parse with per-line salvage fallback
//     ([ParseRecords]). Broken records are dropped and logged, never raised.
//  5. Normalization: each surviving record becomes a canonical [models.Song]
//     with safe defaults ([Normalize]). This stage is total.
//
// [Pipeline.Generate] wraps stages 2-5 in a bounded retry loop. Each attempt
// is a pure function of its inputs; the loop carries no mutable state beyond
// the attempt counter and the last error. An attempt fails when the model call
// errors (including timeouts and missing credentials) or when zero valid songs
// survive normalization. Exhausting the retry budget surfaces a terminal error
// wrapping the last attempt's failure.
//
// A missing API credential flows through the same retry path as transient
// failures rather than failing fast, so callers see one uniform terminal
// error for any unproductive run.
package gen
