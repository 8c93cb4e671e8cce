// Package pager implements the pagination engine for browsing sessions.
//
// A page is a fixed-size batch of image URLs. The engine is deterministic
// and performs no I/O: given identical inputs it always produces identical
// pages, in the order the images were extracted from the profile.
//
// The engine deliberately never emits a short final page. When fewer than
// PageSize images remain, navigation reports exhaustion instead of serving
// a partial batch, so the "Next" button is only ever offered when a full
// page is still available.
package pager
