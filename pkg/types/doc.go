// Package types defines the entity records persisted by the StashVault
// store, the store configuration, the standard error values, and the
// timestamp normalization helpers shared by every repository.
//
// Entities carry no references to each other; relationships are expressed
// by identifier columns resolved through queries.
package types
