// Package catalog defines the records shown by tubeclone and the demo data
// that seeds every view before a remote source is reached.
//
// # Records
//
// Video and Comment are plain values. Their JSON tags follow the remote API so
// the same types serve the client, the demo server and the UI. Both satisfy
// Record, which exposes the id and the fields a search query is matched
// against.
//
// # Demo data
//
// DemoFeed, DemoVideo and DemoComments return fresh copies on every call.
// Callers may modify what they receive without affecting later calls or other
// views, so each view owns its own collection.
//
// # Projection
//
// Project filters a collection by a search query. It is pure: the input slice
// is never modified and the result preserves the input order.
package catalog
