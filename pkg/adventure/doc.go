// Package adventure is a complete reference dialogue: a short cavern crawl
// where the player's health, mana and gold live in a value registry and gate
// some of the choices.
package adventure
