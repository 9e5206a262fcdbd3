// Package store defines the persistence interfaces the reading engine
// consumes, plus shared store errors and transaction helpers. Concrete
// implementations live in internal/platform/postgres; in-memory fakes for
// tests live in internal/mocks.
package store
