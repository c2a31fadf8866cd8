// Package router holds the externally configurable surface of the routing
// core: which location hub to observe, which matcher to match with, and
// which base path the application is mounted under.
//
// The three knobs are independently swappable. The default matcher is the
// compiler-backed one from pkg/pattern; any pattern.Matcher may replace it
// (see pkg/chimatcher for one backed by chi's routing tree) without
// touching the location machinery.
package router
