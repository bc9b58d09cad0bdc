// Package tests holds end-to-end tests that run the full server stack over
// real sockets.
package tests
