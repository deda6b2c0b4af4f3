// Package state provides a lightweight FSM/session manager for Telegram bots.
// It is intentionally domain-agnostic so it can be reused across bots. Two
// implementations exist: an in-memory one and a Postgres-backed one for bots
// that need conversation state to survive restarts.
package state
