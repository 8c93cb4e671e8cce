// Package bot contains the session controller and the Telegram transport.
//
// The controller is the stateful core: it interprets inbound messages and
// callback presses against the per-chat session store, asks the pagination
// engine for the next batch, and sends photos followed by a navigation
// prompt. The transport adapter keeps all Telegram API specifics (inline
// keyboards, photo uploads, callback acknowledgment) behind the Transport
// interface so the controller can be exercised in tests with fakes.
package bot
