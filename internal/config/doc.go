// Package config provides configuration loading, merging, and validation
// facilities for the traveltrek server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields left zero by every source receive the values of defaultConfig.
// The main entry point is [GetStructuredConfig].
package config
