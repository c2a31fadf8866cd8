package location

import "strings"

// EscapePrefix marks a path as absolute, bypassing base-path resolution.
// Resolve emits it for paths outside the configured base, and Navigate
// strips it to address the host verbatim.
const EscapePrefix = "~"

// Resolve projects a raw host path into the value observers see under the
// given base. The base comparison is case-insensitive and respects segment
// boundaries: base "/app" covers "/app" and "/app/x" but not "/apple".
// Paths outside the base come back prefixed with EscapePrefix so they stay
// distinguishable from base-relative ones.
//
// Resolve is idempotent: applying it again to its own output (same base)
// returns the output unchanged.
func Resolve(rawPath, base string) string {
	if base == "" || strings.HasPrefix(rawPath, EscapePrefix) {
		return rawPath
	}

	if len(rawPath) >= len(base) && strings.EqualFold(rawPath[:len(base)], base) {
		rest := rawPath[len(base):]
		if rest == "" {
			return "/"
		}
		if rest[0] == '/' {
			return rest
		}
	}

	return EscapePrefix + rawPath
}
