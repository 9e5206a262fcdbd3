// Package domain defines the core business entities and errors for the
// Arcanara reading engine: tarot cards, draw results, user preferences,
// daily-card records, and reading-history entries.
package domain
