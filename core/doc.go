// Package core holds the HTTP response boundary shared by all services:
// the JSON envelope and the centralized error-to-status translation that
// maps service and isolation-layer errors to response codes.
package core
