// Package domain defines the core business entities of the commitment
// product: commitments, attestations and marketplace listings, together
// with their closed enumerations and the typed commands produced by the
// validation layer.
package domain
