// Package history defines the host navigation source contract and provides
// two in-process implementations: Memory, an entry-stack double suitable
// for tests and server-side use, and Hash, which addresses entries by the
// URL fragment.
//
// A Source exposes three things: a synchronous read of the current
// location, push/replace mutation, and a listener registration for
// implicit navigations (back/forward). Push and Replace are deliberately
// silent, mirroring browser history semantics where pushState emits no
// event; stores layered on top bridge that gap.
package history
