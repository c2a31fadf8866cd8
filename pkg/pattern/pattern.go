package pattern

import (
	"regexp"
	"strings"
	"sync"
)

// WildcardKey is the reserved parameter name for a bare "*" segment.
const WildcardKey = "*"

// key describes one capturing group of a compiled pattern.
type key struct {
	// name is the parameter name the captured value is reported under.
	name string

	// wild marks greedy captures (+, * and bare wildcards). Wild values
	// may span multiple segments and are reported raw, without percent
	// decoding.
	wild bool
}

// Compiled is the immutable artifact of compiling a pattern. Two
// compilations of the same pattern text behave identically; within one
// Compiler they are the same instance.
type Compiled struct {
	// pattern is the original pattern text.
	pattern string

	// re is the anchored matching expression. A nil re means the empty
	// pattern, which matches every path.
	re *regexp.Regexp

	// keys are the capturing groups in declaration order.
	keys []key
}

// Pattern returns the pattern text this artifact was compiled from.
func (c *Compiled) Pattern() string {
	return c.pattern
}

// Keys returns the parameter names in declaration order.
func (c *Compiled) Keys() []string {
	names := make([]string, len(c.keys))
	for i, k := range c.keys {
		names[i] = k.name
	}
	return names
}

// modifiers that may follow a :name parameter.
const paramModifiers = "?+*"

// compile translates a pattern into a Compiled without consulting any cache.
func compile(pat string) (*Compiled, error) {
	if pat == "" {
		return &Compiled{pattern: pat}, nil
	}

	var (
		expr strings.Builder
		keys []key
	)
	expr.WriteString("^")

	offset := 0
	for _, seg := range strings.Split(pat, "/") {
		segStart := offset
		offset += len(seg) + 1 // +1 for the delimiter

		if seg == "" {
			// Leading, trailing or doubled slash: nothing to match.
			continue
		}

		switch seg[0] {
		case ':':
			name := seg[1:]
			mod := byte(0)
			if n := len(name); n > 0 && strings.IndexByte(paramModifiers, name[n-1]) >= 0 {
				mod = name[n-1]
				name = name[:n-1]
			}
			if name == "" {
				return nil, syntaxErr(pat, segStart, "parameter segment %q has no name", seg)
			}
			if i := strings.IndexAny(name, ":?+*"); i >= 0 {
				return nil, syntaxErr(pat, segStart, "unexpected %q in parameter name %q", name[i], seg)
			}

			switch mod {
			case 0:
				keys = append(keys, key{name: name})
				expr.WriteString("/([^/]+)")
			case '?':
				keys = append(keys, key{name: name})
				expr.WriteString("(?:/([^/]+))?")
			case '+':
				keys = append(keys, key{name: name, wild: true})
				expr.WriteString("/(.+)")
			case '*':
				keys = append(keys, key{name: name, wild: true})
				expr.WriteString("(?:/(.+))?")
			}

		case '*':
			if len(seg) > 1 {
				return nil, syntaxErr(pat, segStart, "unexpected characters after wildcard in %q", seg)
			}
			keys = append(keys, key{name: WildcardKey, wild: true})
			expr.WriteString("(?:/(.*))?")

		default:
			expr.WriteString("/")
			expr.WriteString(regexp.QuoteMeta(seg))
		}
	}

	// The tolerated trailing slash is trimmed from the candidate before
	// matching (see Compiled.Match), so the expression anchors hard. An
	// optional /? here would lose to the greedy +/* groups, which would
	// swallow the slash into the captured value.
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		// QuoteMeta escapes every literal, so this indicates a bug in the
		// translation above rather than bad input.
		return nil, syntaxErr(pat, 0, "cannot build matching expression: %v", err)
	}

	return &Compiled{pattern: pat, re: re, keys: keys}, nil
}

// CacheObserver receives compilation-cache events. Implementations must be
// safe for concurrent use. See the instrument package for a Prometheus
// backed implementation.
type CacheObserver interface {
	// CacheHit is called when Compile finds an existing entry.
	CacheHit(pattern string)

	// CacheMiss is called when Compile has to build a new entry.
	CacheMiss(pattern string)
}

// Compiler compiles patterns and caches the results by pattern text. The
// cache is append-only: entries live for the lifetime of the Compiler,
// which is acceptable because an application's pattern set is static.
//
// The zero value is not usable; create Compilers with NewCompiler. All
// methods are safe for concurrent use.
type Compiler struct {
	mu       sync.RWMutex
	cache    map[string]*Compiled
	observer CacheObserver
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCacheObserver registers an observer for cache events.
func WithCacheObserver(obs CacheObserver) CompilerOption {
	return func(c *Compiler) {
		c.observer = obs
	}
}

// NewCompiler creates a Compiler with an empty cache.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		cache: make(map[string]*Compiled),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns the compiled form of pat, building and caching it on
// first use. Repeated calls with equal pattern text return the identical
// *Compiled instance.
func (c *Compiler) Compile(pat string) (*Compiled, error) {
	c.mu.RLock()
	compiled, ok := c.cache[pat]
	c.mu.RUnlock()
	if ok {
		if c.observer != nil {
			c.observer.CacheHit(pat)
		}
		return compiled, nil
	}

	compiled, err := compile(pat)
	if err != nil {
		// Errors are not cached: the caller gets the same descriptive
		// failure on every attempt.
		return nil, err
	}

	c.mu.Lock()
	if existing, ok := c.cache[pat]; ok {
		// Lost the race; keep the published instance.
		compiled = existing
	} else {
		c.cache[pat] = compiled
	}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer.CacheMiss(pat)
	}
	return compiled, nil
}

// Size returns the number of cached patterns.
func (c *Compiler) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// defaultCompiler backs the package-level Compile and Match functions.
var defaultCompiler = NewCompiler()

// Compile compiles pat using the package-level compiler cache.
func Compile(pat string) (*Compiled, error) {
	return defaultCompiler.Compile(pat)
}
