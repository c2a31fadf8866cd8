package pattern

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		matched bool
		params  Params
	}{
		{"literal", "/about", "/about", true, Params{}},
		{"literal miss", "/about", "/contact", false, nil},
		{"literal trailing slash", "/about", "/about/", true, Params{}},
		{"root", "/", "/", true, Params{}},
		{"named", "/users/:name", "/users/alex", true, Params{"name": "alex"}},
		{"named miss", "/users/:name", "/anything", false, nil},
		{"named empty segment", "/users/:name", "/users/", false, nil},
		{"named extra segment", "/users/:name", "/users/alex/posts", false, nil},
		{"two named", "/orders/:year/:id", "/orders/2026/17", true, Params{"year": "2026", "id": "17"}},
		{"optional present", "/users/:name?", "/users/alex", true, Params{"name": "alex"}},
		{"optional absent", "/users/:name?", "/users", true, Params{}},
		{"plus one", "/files/:path+", "/files/a", true, Params{"path": "a"}},
		{"plus many", "/files/:path+", "/files/a/b/c", true, Params{"path": "a/b/c"}},
		{"plus zero", "/files/:path+", "/files", false, nil},
		{"plus trailing slash", "/files/:path+", "/files/a/b/", true, Params{"path": "a/b"}},
		{"star many", "/foo/:bar*", "/foo/a/b/c", true, Params{"bar": "a/b/c"}},
		{"star zero", "/foo/:bar*", "/foo", true, Params{}},
		{"star trailing slash", "/foo/:bar*", "/foo/a/b/c/", true, Params{"bar": "a/b/c"}},
		{"star zero trailing slash", "/foo/:bar*", "/foo/", true, Params{}},
		{"bare wildcard", "/app/*", "/app/x/y", true, Params{"*": "x/y"}},
		{"bare wildcard trailing slash", "/app/*", "/app/x/y/", true, Params{"*": "x/y"}},
		{"no partial match", "/users", "/users/alex", false, nil},
		{"no suffix match", "/alex", "/users/alex", false, nil},
		{"empty pattern matches root", "", "/", true, Params{}},
		{"empty pattern matches anything", "", "/users/alex?q=1", true, Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Match(tt.pattern, tt.path)
			if err != nil {
				t.Fatalf("Match(%q, %q): %v", tt.pattern, tt.path, err)
			}
			if res.Matched != tt.matched {
				t.Fatalf("Match(%q, %q).Matched = %v, want %v", tt.pattern, tt.path, res.Matched, tt.matched)
			}
			if diff := cmp.Diff(tt.params, res.Params); diff != "" {
				t.Errorf("Match(%q, %q) params mismatch (-want +got):\n%s", tt.pattern, tt.path, diff)
			}
		})
	}
}

func TestMatchDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		res, err := Match("/users/:name", "/users/alex")
		if err != nil {
			t.Fatalf("Match: %v", err)
		}
		if !res.Matched || res.Params["name"] != "alex" {
			t.Fatalf("iteration %d: res = %+v", i, res)
		}
	}
}

func TestMatchPercentDecoding(t *testing.T) {
	res, err := Match("/users/:name", "/users/alex%20smith")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Params["name"] != "alex smith" {
		t.Errorf("name = %q, want %q", res.Params["name"], "alex smith")
	}

	// Greedy captures stay raw.
	res, err = Match("/files/:path+", "/files/a%20b/c")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Params["path"] != "a%20b/c" {
		t.Errorf("path = %q, want raw %q", res.Params["path"], "a%20b/c")
	}
}

func TestMatchDecodeFailure(t *testing.T) {
	_, err := Match("/users/:name", "/users/bad%zz")
	if err == nil {
		t.Fatal("expected decode error for malformed percent-encoding")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error %q does not name the parameter", err)
	}
}

func TestMatchLiteralCaseSensitive(t *testing.T) {
	res, err := Match("/About", "/about")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Matched {
		t.Error("literal segments match byte-for-byte; case must matter")
	}
}

// Building a path from param values and matching it back must return the
// original values, for patterns with only literal and named segments.
func TestMatchRoundTrip(t *testing.T) {
	values := []string{"alex", "a-b_c", "42", "x.y"}
	for _, v := range values {
		path := "/users/" + v + "/posts/" + v
		res, err := Match("/users/:user/posts/:post", path)
		if err != nil {
			t.Fatalf("Match(%q): %v", path, err)
		}
		if !res.Matched {
			t.Fatalf("Match(%q): no match", path)
		}
		if res.Params["user"] != v || res.Params["post"] != v {
			t.Errorf("round-trip of %q gave %v", v, res.Params)
		}
	}
}

func TestMatcherFunc(t *testing.T) {
	var m Matcher = MatcherFunc(func(pattern, path string) (Result, error) {
		if pattern == "" {
			return Result{Matched: true, Params: Params{}}, nil
		}
		return NoMatch, nil
	})

	res, err := m.Match("", "/anything")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !res.Matched {
		t.Error("empty pattern must match")
	}
}
