// Package clientes provides the business logic for the client registry:
// field validation, the persistence contract, and batch ingestion.
//
// The package is split into three pieces:
//
//  1. Validation: pure per-field checks (validation.go). Each check is total
//     and independent, so a candidate can be checked against every rule in
//     one pass and report every failure at once.
//  2. Store: the persistence contract (store.go). Drivers live in
//     internal/store and are injected; the package never opens its own
//     connections.
//  3. Batch ingestion: applies validation and Create across an ordered list
//     of candidates with per-item isolation (batch.go).
//
// Validation reason strings are user-facing and intentionally kept in
// Portuguese ("nome obrigatório", "email inválido", ...) to preserve the
// wire contract consumed by existing clients.
package clientes
