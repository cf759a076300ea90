// Package models defines the core domain models for workledger.
//
// # Models
//
//   - Client: A contracted job with a fixed total amount (rate × area)
//   - Payment: A single dated amount, on the client or worker side
//   - Worker: A person hired against a client job with a fixed total pay
//   - HistoryEvent: An audit record of a ledger-affecting action
//
// # Design Principles
//
// 1. **Document shape**: A Client carries its payments, workers and history
// inline; the whole record round-trips through storage as one JSON document.
// 2. **Derived figures are not stored**: totals, remaining, due, advance and
// cash flow are recomputed from payment lists (see the ledger package). The
// only derived data written back is the pre-rendered HistoryEvent message.
// 3. **Avoid circular references**: relationships use ID strings, not pointers.
//
// IDs are opaque UUID strings assigned by the storage layer or service;
// timestamps are Unix seconds.
package models
