// Package common holds the helpers every capability module shares: account
// resolution, argument decoding and the instrumentation middleware.
package common
