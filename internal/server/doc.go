// Package server implements the demo tubeclone API that the client treats
// as its optional remote source.
//
// The API is served by a chi router over an in-memory Library seeded from
// catalog.Library. Nothing is persisted. Every request passes through a
// zerolog request logger, Prometheus metrics (exposed on /metrics) and CORS;
// write endpoints are additionally rate limited per client address.
package server
