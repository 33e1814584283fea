// Package http serves the REST API of the membership backend.
//
// Routes are grouped by audience: public catalog reads, throttled sign-in
// and enrollment, member routes behind a bearer token, and operator routes
// gated by role. Chat replies are streamed as server-sent events.
package http
