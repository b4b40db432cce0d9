package domain

// CommitmentType classifies the risk profile of a commitment.
type CommitmentType string

const (
	CommitmentTypeSafe       CommitmentType = "safe"
	CommitmentTypeBalanced   CommitmentType = "balanced"
	CommitmentTypeAggressive CommitmentType = "aggressive"
)

// CommitmentStatus is the lifecycle state of a commitment.
type CommitmentStatus string

const (
	CommitmentStatusActive    CommitmentStatus = "active"
	CommitmentStatusSettled   CommitmentStatus = "settled"
	CommitmentStatusViolated  CommitmentStatus = "violated"
	CommitmentStatusEarlyExit CommitmentStatus = "early_exit"
)

// DefaultAssetCode is the native Stellar asset. Commitments denominated in
// it never carry an issuer.
const DefaultAssetCode = "XLM"

// SignatureContext carries the optional wallet-signature material attached
// to write operations. When SignerAddress is set it must match the
// commitment owner.
type SignatureContext struct {
	Nonce         string
	Signature     string
	SignerAddress string
}

// CreateCommitmentInput is the typed command produced by parsing a
// create-commitment request body. AssetIssuer is nil exactly when AssetCode
// is the default asset.
type CreateCommitmentInput struct {
	OwnerAddress     string
	Amount           string
	AssetCode        string
	AssetIssuer      *string
	DurationDays     int
	MaxLossPercent   int
	CommitmentType   CommitmentType
	SignatureContext *SignatureContext
}

// EarlyExitInput is the typed command for a voluntary early termination.
// CurrentStatus is optional; when provided, the chain layer rejects any
// status other than active.
type EarlyExitInput struct {
	OwnerAddress     string
	CurrentStatus    string
	HasCurrentStatus bool
	SignatureContext *SignatureContext
}
