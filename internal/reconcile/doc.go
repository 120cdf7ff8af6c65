// Package reconcile decides, per view, whether the view shows its demo seed
// or data fetched from the remote API.
//
// # State machine
//
// Every Reconciler starts in Local with its seed. A retry moves it to
// Probing; the probe and fetch then move it to Remote on success or Error on
// any failure. Error keeps the seed on screen and falls back to Local after
// the error hold delay. SwitchToDemo returns a Remote view to Local with the
// original seed.
//
//	        retry            ok
//	Local ────────> Probing ─────> Remote
//	  ^               │  ^           │
//	  │ hold elapsed  │  │ retry     │ switch to demo
//	  └──── Error <───┘  └───────────┤
//	                fail             v
//	                               Local
//
// # Ordering
//
// Begin hands out a generation token and Complete applies a result only when
// its token is still the newest. A slow probe that finishes after a newer one
// is dropped, and so is any result that arrives after the view was closed.
//
// # Collections
//
// The seed is copied at construction and on every restore, and the stored
// collection is never filtered in place: Snapshot projects it through the
// current query with catalog.Project.
//
// Comment threads (Thread) are always local. Uploads (SubmitUpload) go to the
// remote API and change no collection.
package reconcile
