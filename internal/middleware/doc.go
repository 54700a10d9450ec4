// Package middleware provides HTTP middleware for the media indexer
// service.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with path normalization
//   - Configurable filtering for poster assets and health checks
package middleware
