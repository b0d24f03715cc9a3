// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the reconcile endpoints.
//   - rayid: generates (or propagates) a request id, stored in the context and
//     echoed in the X-Ray-ID response header for tracing.
//
// Register rayid first so every later log line can carry the id.
package middleware
