// Package logtail reads the end of the client's own log file for the Logs
// screen.
//
// # Reading
//
// Read keeps a ring buffer of maxLines strings while scanning the file once,
// so memory stays O(maxLines) regardless of file size:
//
//  1. Allocate a ring of maxLines slots
//  2. For each line, store it at idx and advance idx modulo maxLines
//  3. If fewer than maxLines lines were seen, return ring[:count]
//  4. Otherwise return the ring starting at idx (the oldest line)
//
// A missing file is not an error; it simply has no lines yet.
//
// # Parsing
//
// The client logs zerolog JSON lines. Parse turns each into an Entry with
// time, level and message pulled out and the remaining keys kept as sorted
// Fields. Anything that is not a JSON object is kept verbatim as the message,
// so a corrupted or hand-edited file still displays.
package logtail
