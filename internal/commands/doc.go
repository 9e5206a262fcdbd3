// Package commands maps user invocations to readings. Each command draws
// through the deck engine, renders with the user's tone, and packs the
// result into bounded output units for the messaging collaborator.
package commands
