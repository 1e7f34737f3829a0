// Package capture provides the loopback redirect endpoint for the desktop
// OAuth2 authorization-code flow.
//
// # Flow
//
// The front end calls [Listener.Start], which binds 127.0.0.1:0 and returns
// the OS-assigned port so the caller can build the provider's redirect URI.
// A background goroutine accepts requests one at a time, answering each with
// a fixed plain-text body, until a request carries a code query parameter.
// The first extracted code is handed off through a buffered one-shot channel
// and the listening socket is closed.
//
// [Listener.Await] takes the pending channel out of the guarded slot and
// races it against the caller's timeout. At most one capture is in flight per
// [Listener]; a second Start before an Await is rejected, and the losing side
// of two concurrent Awaits observes an empty slot.
//
// # What this package does not do
//
// Token exchange, state verification, and credential persistence all live
// with the caller. The captured code is an opaque string.
package capture
