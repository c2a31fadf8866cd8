package pattern

import (
	"errors"
	"strings"
	"testing"
)

func TestCompileReturnsCachedInstance(t *testing.T) {
	c := NewCompiler()

	first, err := c.Compile("/users/:id")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := c.Compile("/users/:id")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if first != second {
		t.Error("repeated Compile of equal text should return the same instance")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCompileDistinctPatternsDistinctEntries(t *testing.T) {
	c := NewCompiler()

	a, _ := c.Compile("/a")
	b, _ := c.Compile("/b")
	if a == b {
		t.Error("distinct patterns must not share a cache entry")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestCompileKeys(t *testing.T) {
	tests := []struct {
		pattern string
		keys    []string
	}{
		{"/users/:name", []string{"name"}},
		{"/a/:b/:c", []string{"b", "c"}},
		{"/files/:path+", []string{"path"}},
		{"/app/:rest*", []string{"rest"}},
		{"/app/*", []string{"*"}},
		{"/static", nil},
		{"", nil},
	}

	for _, tt := range tests {
		compiled, err := Compile(tt.pattern)
		if err != nil {
			t.Errorf("Compile(%q): %v", tt.pattern, err)
			continue
		}
		got := compiled.Keys()
		if len(got) != len(tt.keys) {
			t.Errorf("Compile(%q).Keys() = %v, want %v", tt.pattern, got, tt.keys)
			continue
		}
		for i := range got {
			if got[i] != tt.keys[i] {
				t.Errorf("Compile(%q).Keys()[%d] = %q, want %q", tt.pattern, i, got[i], tt.keys[i])
			}
		}
	}
}

func TestCompileSyntaxErrors(t *testing.T) {
	bad := []string{
		"/users/:",
		"/users/:?",
		"/users/:+",
		"/users/:name+?",
		"/users/:na:me",
		"/files/*junk",
	}

	c := NewCompiler()
	for _, pat := range bad {
		_, err := c.Compile(pat)
		if err == nil {
			t.Errorf("Compile(%q): expected error, got nil", pat)
			continue
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Compile(%q): error %T, want *SyntaxError", pat, err)
			continue
		}
		if serr.Pattern != pat {
			t.Errorf("Compile(%q): SyntaxError.Pattern = %q", pat, serr.Pattern)
		}
		if !strings.Contains(err.Error(), pat) {
			t.Errorf("Compile(%q): error %q does not name the pattern", pat, err)
		}
	}

	// Failed compilations are not cached.
	if c.Size() != 0 {
		t.Errorf("Size() = %d after failed compiles, want 0", c.Size())
	}
}

func TestCompileErrorRepeats(t *testing.T) {
	c := NewCompiler()

	_, err1 := c.Match("/broken/:", "/broken/x")
	_, err2 := c.Match("/broken/:", "/broken/x")
	if err1 == nil || err2 == nil {
		t.Fatal("malformed pattern must error on every match attempt")
	}
	if err1.Error() != err2.Error() {
		t.Errorf("error text changed between attempts: %q vs %q", err1, err2)
	}
}

type countingObserver struct {
	hits, misses int
}

func (o *countingObserver) CacheHit(string)  { o.hits++ }
func (o *countingObserver) CacheMiss(string) { o.misses++ }

func TestCacheObserver(t *testing.T) {
	obs := &countingObserver{}
	c := NewCompiler(WithCacheObserver(obs))

	c.Compile("/a/:b")
	c.Compile("/a/:b")
	c.Compile("/c")

	if obs.misses != 2 {
		t.Errorf("misses = %d, want 2", obs.misses)
	}
	if obs.hits != 1 {
		t.Errorf("hits = %d, want 1", obs.hits)
	}
}
