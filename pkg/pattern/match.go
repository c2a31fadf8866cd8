package pattern

import (
	"fmt"
	"net/url"
	"strings"
)

// Params maps parameter names to the path text they captured.
type Params map[string]string

// Result is the outcome of matching a pattern against a path. A failed
// match is a first-class value, not an error.
type Result struct {
	// Matched reports whether the path satisfied the pattern.
	Matched bool

	// Params holds the captured parameters. It is nil when Matched is
	// false.
	Params Params
}

// NoMatch is the canonical no-match result.
var NoMatch = Result{}

// Matcher is the capability of matching a pattern against a path. Any
// implementation may be substituted for the default compiler-backed one,
// provided it keeps the empty-pattern-always-matches convention and
// returns NoMatch (with a nil error) when the path simply does not fit.
type Matcher interface {
	Match(pattern, path string) (Result, error)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(pattern, path string) (Result, error)

// Match implements Matcher.
func (f MatcherFunc) Match(pattern, path string) (Result, error) {
	return f(pattern, path)
}

// Match executes the compiled pattern against path. One trailing slash on
// the path is tolerated and matches as if absent, so it never leaks into a
// greedy capture. Captured single-segment parameters are percent-decoded;
// greedy captures (+, *, bare wildcards) are reported raw with interior
// slashes preserved. A decode failure on a captured segment is returned as
// an error, never masked as an empty value.
func (c *Compiled) Match(path string) (Result, error) {
	if c.re == nil {
		// Empty pattern: the fallback route.
		return Result{Matched: true, Params: Params{}}, nil
	}

	// The root path "/" trims to "", which is what a pattern of bare
	// slashes compiles to.
	path = strings.TrimSuffix(path, "/")

	groups := c.re.FindStringSubmatch(path)
	if groups == nil {
		return NoMatch, nil
	}

	params := make(Params, len(c.keys))
	for i, k := range c.keys {
		val := groups[i+1]
		if val == "" {
			// Absent optional or zero-segment capture. Mandatory groups
			// cannot capture the empty string, so this never drops a
			// legitimate value.
			continue
		}
		if k.wild {
			params[k.name] = val
			continue
		}
		decoded, err := url.PathUnescape(val)
		if err != nil {
			return NoMatch, fmt.Errorf("pattern: decoding param %q from %q: %w", k.name, val, err)
		}
		params[k.name] = decoded
	}

	return Result{Matched: true, Params: params}, nil
}

// Match compiles pat (hitting the Compiler's cache in steady state) and
// executes it against path. The error is non-nil only for malformed
// patterns and undecodable captures; an ordinary miss is (NoMatch, nil).
func (c *Compiler) Match(pat, path string) (Result, error) {
	compiled, err := c.Compile(pat)
	if err != nil {
		return NoMatch, err
	}
	return compiled.Match(path)
}

// Match matches using the package-level compiler cache.
func Match(pat, path string) (Result, error) {
	return defaultCompiler.Match(pat, path)
}
