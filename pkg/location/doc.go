// Package location synchronizes a host navigation source with any number
// of observers.
//
// A Hub wraps one history.Source under one base path and projects three
// independently observable values: the base-resolved path, the search
// string, and the history state. Each projection is a Store with a
// snapshot read and callback subscription; a Store notifies its
// subscribers exactly when its projected value changes, never spuriously,
// synchronously and in registration order.
//
// Writes go through Hub.Navigate, which mutates the source and then runs
// the same notification pass used for host back/forward signals, so a
// snapshot read immediately after Navigate returns the new value.
//
// Hubs are shared: a Registry hands out one Hub per (source, base) pair so
// observers with identical configuration never duplicate host listeners.
package location
