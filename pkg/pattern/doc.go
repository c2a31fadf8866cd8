// Package pattern implements the path-template DSL used for route matching.
//
// A pattern is a path whose segments are either literals or named
// parameters:
//
//	/users            literal segments match themselves
//	/users/:id        :name captures one segment
//	/users/:id?       :name? captures zero or one segment
//	/files/:path+     :name+ captures one or more segments
//	/app/:rest*       :name* captures zero or more segments (catch-all)
//	/app/*            bare * captures the rest under the reserved key "*"
//	""                the empty pattern matches every path
//
// Patterns compile to anchored regular expressions. Compilation is cached
// per Compiler instance, keyed by pattern text, so matching the same
// pattern repeatedly pays the compilation cost once.
package pattern
