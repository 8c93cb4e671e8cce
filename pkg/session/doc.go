// Package session provides the process-wide store of per-chat browsing state.
//
// One Session exists per chat identity at most, created when the chat
// submits a profile link that yields a viable image batch and replaced when
// a new link arrives. Sessions are never deleted; an exhausted session keeps
// its source URL so follow-up messaging can still refer to it. The store
// grows with distinct chat identities for the process lifetime; eviction is
// intentionally out of scope.
package session
