package chain

// Commitment is the loosely-typed commitment record as the chain layer
// reports it. Identifier and numeric fields are `any` because RPC results
// and mock fixtures deliver them as strings or numbers interchangeably; the
// dto package owns the normalization into the client-facing shape.
type Commitment struct {
	ID             any    `json:"id"`
	OwnerAddress   string `json:"ownerAddress"`
	Amount         any    `json:"amount"`
	AssetCode      string `json:"assetCode,omitempty"`
	AssetIssuer    string `json:"assetIssuer,omitempty"`
	DurationDays   any    `json:"durationDays"`
	MaxLossPercent any    `json:"maxLossPercent"`
	CommitmentType string `json:"commitmentType"`
	Status         string `json:"status,omitempty"`
	NFTTokenID     any    `json:"nftTokenId,omitempty"`
}

// Attestation is the loosely-typed attestation record from the chain layer.
type Attestation struct {
	ID           any            `json:"id"`
	CommitmentID any            `json:"commitmentId"`
	OwnerAddress string         `json:"ownerAddress"`
	Kind         string         `json:"kind"`
	Verdict      string         `json:"verdict,omitempty"`
	ObservedAt   any            `json:"observedAt,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}
