// Package ratelimit provides rate limiting for outbound Pinterest traffic.
//
// A single token bucket is shared between profile scrapes and image byte
// fetches so the bot never exceeds the configured requests-per-minute
// budget regardless of how many chats are active.
//
// All rate limiters implement the Limiter interface:
//   - Allow() bool - Check if a request is allowed
//   - Wait() - Block until a request is allowed
//   - Reset() - Reset the limiter state
package ratelimit
