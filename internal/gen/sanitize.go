package gen

import (
	"regexp"
	"strings"
)

var (
	fenceRe    = regexp.MustCompile("```json\\s*|\\s*```")
	bracketsRe = regexp.MustCompile(`^\s*\[|\]\s*$`)
	boundaryRe = regexp.MustCompile(`},\s*{`)
)

// Sanitize strips formatting noise from raw model output to maximize the
// chance of a valid structured parse downstream.
//
// Transforms, in order: code-fence markers are removed, a single enclosing
// pair of array brackets is stripped (so re-wrapping is uniform either way),
// adjacent object boundaries gain a newline (enabling line-oriented salvage
// parsing), and surrounding whitespace is trimmed.
//
// This is best-effort normalization, not validation; the result may still be
// invalid JSON.
func Sanitize(raw string) string {
	cleaned := fenceRe.ReplaceAllString(raw, "")
	cleaned = bracketsRe.ReplaceAllString(cleaned, "")
	cleaned = boundaryRe.ReplaceAllString(cleaned, "},\n{")
	return strings.TrimSpace(cleaned)
}
