// Package ratelimit provides per-provider admission control for outbound
// API calls.
//
// Each provider gets its own Limiter configured with a rolling-window request
// quota and a minimum gap between consecutive requests. Acquire blocks the
// caller until both constraints allow the next request, or until the context
// is cancelled. All provider clients call Acquire before every outbound
// request; nothing bypasses it.
package ratelimit
