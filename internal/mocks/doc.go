// Package mocks provides in-memory implementations of the store interfaces
// for unit testing services and handlers without a database. Each mock keeps
// a map-backed default behavior and exposes function fields for overriding
// individual operations in a test.
package mocks
