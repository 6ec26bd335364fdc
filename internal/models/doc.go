// Package models defines the core domain records for the roommate budget.
//
// There are three tables' worth of state and nothing else:
//   - Room: a shared budget space identified by a short shareable code
//   - Member: a person who joined a room (at most two per room)
//   - Expense: a single payment recorded against a room
//
// All relationships use ID strings rather than pointers, and JSON field
// names match the REST surface (snake_case, same as the database columns).
// Derived figures (totals, per-person share, settlement) live in the
// calculator package, not here.
package models
