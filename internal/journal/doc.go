// Package journal persists a record of every packaging attempt so operators
// can see who used the bot and how requests ended. It stores lifecycle
// metadata only; produced archives are never retained.
package journal
