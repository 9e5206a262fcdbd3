// Package mocks provides in-memory implementations of the store interfaces
// for tests. Each mock keeps map-backed default behavior and exposes
// function fields to override individual operations.
package mocks
