// Package game holds the domain model for the AlgoRealm client: accounts,
// game items, aggregate game info, and the deployment descriptor.
//
// Account and GameItem are transient projections of chain state, re-fetched
// on demand and never cached across calls. CreatedItemRecord is a
// session-local convenience index and is never a source of truth for
// ownership.
package game
