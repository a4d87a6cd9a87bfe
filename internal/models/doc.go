// Package models defines the core domain entities for Nossa Grana.
//
// # Entities
//
//   - User: a registered account, belonging to at most one couple
//   - Couple: two users (fewer, transiently) sharing finances
//   - Invitation: a single-use, tokenized proposal to join a couple
//   - Transaction: an income or expense split across couple members
//
// # Design Principles
//
//  1. **Identity by reference**: entities point at each other with uuid.UUID
//     values, never live pointers, so each can be stored and loaded
//     independently.
//  2. **Explicit mutation**: state changes go through named methods that
//     stamp UpdatedAt; persistence is a separate, explicit repository call.
//  3. **Minor currency units**: all amounts are int64 cents. No floats,
//     no tolerance windows; sums must match exactly.
package models
