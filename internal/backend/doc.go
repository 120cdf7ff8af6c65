// Package backend provides an HTTP client for the tubeclone API.
//
// # Overview
//
// The API is an optional remote source. It may be stopped, reachable but
// broken, or serving something that is not the tubeclone API at all. The
// client turns every one of those situations into an ordinary error value
// the caller can classify.
//
// # Error classes
//
// Every error returned by Client wraps one sentinel:
//
//   - ErrTransport: no response (connection refused, DNS failure, timeout)
//   - ErrProtocolMismatch: non-2xx status or a non-JSON content type
//   - ErrShapeMismatch: JSON that does not decode into the expected records,
//     records missing an id or title, or duplicate ids
//
// KindOf maps an error to a short Kind for logs and diagnostics.
//
// # Usage
//
//	client, err := backend.NewClient("http://127.0.0.1:5328")
//	if err != nil {
//		return err
//	}
//	videos, err := client.Videos(ctx, "")
//	if errors.Is(err, backend.ErrTransport) {
//		// server is not running
//	}
//
// Every request carries Accept: application/json and is bounded by the
// client timeout (DefaultTimeout unless WithHTTPClient supplies another).
package backend
