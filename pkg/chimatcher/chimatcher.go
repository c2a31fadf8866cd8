// Package chimatcher provides a pattern.Matcher backed by chi's routing
// tree instead of the default regular-expression compiler.
//
// It accepts the literal, :name and trailing catch-all (:name*, *) parts
// of the pattern DSL and translates them onto chi route patterns. The ?
// and + modifiers have no chi equivalent and are rejected with a
// descriptive error rather than silently never matching. The
// empty-pattern-always-matches convention is preserved.
package chimatcher

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/vroute/pkg/pattern"
)

// ErrUnsupported marks DSL constructs chi's tree cannot express.
var ErrUnsupported = errors.New("chimatcher: unsupported pattern syntax")

// entry is one compiled pattern: a single-route chi mux plus the name the
// wildcard capture is reported under.
type entry struct {
	mux      *chi.Mux
	wildName string
}

// Matcher implements pattern.Matcher on chi's routing tree, with the same
// per-pattern compilation cache discipline as the default compiler.
type Matcher struct {
	mu    sync.RWMutex
	cache map[string]*entry
}

// New creates a Matcher with an empty cache.
func New() *Matcher {
	return &Matcher{cache: make(map[string]*entry)}
}

// Match implements pattern.Matcher.
func (m *Matcher) Match(pat, path string) (pattern.Result, error) {
	if pat == "" {
		return pattern.Result{Matched: true, Params: pattern.Params{}}, nil
	}

	e, err := m.compile(pat)
	if err != nil {
		return pattern.NoMatch, err
	}

	// One trailing slash on the candidate is tolerated, as with the
	// default matcher.
	candidate := path
	if len(candidate) > 1 {
		candidate = strings.TrimSuffix(candidate, "/")
	}

	rctx := chi.NewRouteContext()
	if !e.mux.Match(rctx, http.MethodGet, candidate) {
		return pattern.NoMatch, nil
	}

	params := make(pattern.Params, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		v := rctx.URLParams.Values[i]
		if k == "*" {
			// Wildcard captures stay raw, slashes preserved.
			if e.wildName != "" && v != "" {
				params[e.wildName] = strings.TrimSuffix(v, "/")
			}
			continue
		}
		decoded, err := url.PathUnescape(v)
		if err != nil {
			return pattern.NoMatch, fmt.Errorf("chimatcher: decoding param %q from %q: %w", k, v, err)
		}
		params[k] = decoded
	}

	return pattern.Result{Matched: true, Params: params}, nil
}

// compile translates pat into a chi mux, caching the result by pattern
// text.
func (m *Matcher) compile(pat string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.cache[pat]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}

	e, err := translate(pat)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.cache[pat]; ok {
		e = existing
	} else {
		m.cache[pat] = e
	}
	m.mu.Unlock()
	return e, nil
}

// translate maps the DSL onto a chi route. A trailing catch-all becomes a
// chi /* route plus a bare route for the zero-segment case.
func translate(pat string) (*entry, error) {
	if !strings.HasPrefix(pat, "/") {
		return nil, fmt.Errorf("%w: pattern %q must begin with /", ErrUnsupported, pat)
	}

	segments := strings.Split(pat, "/")[1:]
	var (
		parts    []string
		wildName string
	)

	for i, seg := range segments {
		last := i == len(segments)-1

		switch {
		case seg == "":
			continue

		case seg == "*":
			if !last {
				return nil, fmt.Errorf("%w: wildcard must be the final segment in %q", ErrUnsupported, pat)
			}
			wildName = pattern.WildcardKey

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			mod := byte(0)
			if n := len(name); n > 0 && strings.IndexByte("?+*", name[n-1]) >= 0 {
				mod = name[n-1]
				name = name[:n-1]
			}
			if name == "" || strings.ContainsAny(name, ":?+*") {
				return nil, fmt.Errorf("%w: malformed parameter %q in %q", ErrUnsupported, seg, pat)
			}

			switch mod {
			case '*':
				if !last {
					return nil, fmt.Errorf("%w: catch-all must be the final segment in %q", ErrUnsupported, pat)
				}
				wildName = name
			case '?', '+':
				return nil, fmt.Errorf("%w: modifier %q in %q has no chi equivalent", ErrUnsupported, string(mod), pat)
			default:
				parts = append(parts, "{"+name+"}")
			}

		default:
			parts = append(parts, seg)
		}
	}

	prefix := "/" + strings.Join(parts, "/")

	mux := chi.NewRouter()
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	if wildName == "" {
		mux.Get(prefix, noop)
		return &entry{mux: mux}, nil
	}

	// Catch-all: the bare prefix covers zero captured segments.
	mux.Get(prefix, noop)
	if prefix == "/" {
		mux.Get("/*", noop)
	} else {
		mux.Get(prefix+"/*", noop)
	}
	return &entry{mux: mux, wildName: wildName}, nil
}
