// Package routefile loads JSON route manifests for the vroute CLI.
//
// A manifest lists the patterns an application declares, so they can be
// compile-checked offline:
//
//	{
//	  "base": "/app",
//	  "routes": [
//	    {"name": "user", "pattern": "/users/:id"},
//	    {"name": "files", "pattern": "/files/:path*"}
//	  ]
//	}
package routefile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Route is one declared route.
type Route struct {
	// Name is an optional human-readable identifier.
	Name string `json:"name,omitempty"`

	// Pattern is the path-template DSL string.
	Pattern string `json:"pattern"`
}

// File is a parsed route manifest.
type File struct {
	// Base is the optional base path the application mounts under.
	Base string `json:"base,omitempty"`

	// Routes are the declared routes, in file order.
	Routes []Route `json:"routes"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("routefile: reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("routefile: %s: %w", path, err)
	}
	return f, nil
}

// Parse parses manifest bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if len(f.Routes) == 0 {
		return nil, fmt.Errorf("manifest declares no routes")
	}
	for i, r := range f.Routes {
		if r.Pattern == "" && r.Name == "" {
			return nil, fmt.Errorf("route %d: missing pattern", i)
		}
	}
	return &f, nil
}

// Duplicates returns the pattern texts that appear more than once, in
// first-occurrence order.
func (f *File) Duplicates() []string {
	seen := make(map[string]int, len(f.Routes))
	var dups []string
	for _, r := range f.Routes {
		seen[r.Pattern]++
		if seen[r.Pattern] == 2 {
			dups = append(dups, r.Pattern)
		}
	}
	return dups
}
