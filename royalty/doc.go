// Package royalty implements a multi-party equity and revenue-sharing
// engine for a single work. A fixed pool of 100 quota points is held by
// a small set of owners; incoming payments are credited to the owners
// proportional to quota; jointly governed parameters change through
// quota-weighted consensus; and owners may offer quota for sale, which
// investors acquire at a price derived from the accumulated revenue
// history, with proceeds settled across sellers before any quota moves.
//
// The engine assumes an external host that authenticates callers,
// serializes calls (at most one call executes at a time against an
// instance) and supplies an atomic value-transfer primitive via the
// Transferor interface. There is no locking inside the package.
package royalty
