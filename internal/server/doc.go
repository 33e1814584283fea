// Package server runs the HTTP API and the gRPC health endpoint and stops
// both gracefully when the run context is cancelled.
package server
