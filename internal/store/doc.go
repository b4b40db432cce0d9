// Package store defines the persistence capability interfaces and their
// in-memory implementations. The marketplace service depends only on the
// ListingStore interface, so a durable backend can replace the memory
// implementation without touching the service's invariants.
package store
