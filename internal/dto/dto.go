// Package dto converts externally-sourced chain models into normalized,
// client-facing DTOs. Coercion is deliberately forgiving: unrecognized
// enum values fall back to documented defaults instead of failing, because
// chain data is outside this process's control.
package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/domain"
)

// Commitment is the client-facing commitment shape.
type Commitment struct {
	CommitmentID   string                  `json:"commitmentId"`
	OwnerAddress   string                  `json:"ownerAddress"`
	Amount         string                  `json:"amount"`
	AssetCode      string                  `json:"assetCode"`
	AssetIssuer    *string                 `json:"assetIssuer"`
	DurationDays   int                     `json:"durationDays"`
	MaxLossPercent int                     `json:"maxLossPercent"`
	CommitmentType domain.CommitmentType   `json:"commitmentType"`
	Status         domain.CommitmentStatus `json:"status"`
	NFTTokenID     *string                 `json:"nftTokenId"`
}

// Attestation is the client-facing attestation shape.
type Attestation struct {
	AttestationID string                    `json:"attestationId"`
	CommitmentID  string                    `json:"commitmentId"`
	OwnerAddress  string                    `json:"ownerAddress"`
	Kind          string                    `json:"kind"`
	Verdict       domain.AttestationVerdict `json:"verdict"`
	ObservedAt    string                    `json:"observedAt"`
	Details       map[string]any            `json:"details,omitempty"`
}

// stringify renders identifier and numeric fields the chain reports as
// either strings or numbers.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toInt coerces a chain-reported numeric field to an int, tolerating
// numeric strings. Unparseable values collapse to zero.
func toInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// toCommitmentType coerces a free-form type string into the closed
// enumeration, falling back to balanced for unrecognized values.
func toCommitmentType(value string) domain.CommitmentType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "safe":
		return domain.CommitmentTypeSafe
	case "balanced":
		return domain.CommitmentTypeBalanced
	case "aggressive":
		return domain.CommitmentTypeAggressive
	}
	return domain.CommitmentTypeBalanced
}

// toCommitmentStatus coerces a free-form status string, handling the
// space-, underscore- and hyphen-separated spellings of "early exit" and
// falling back to active for anything unrecognized.
func toCommitmentStatus(value string) domain.CommitmentStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active":
		return domain.CommitmentStatusActive
	case "settled":
		return domain.CommitmentStatusSettled
	case "violated":
		return domain.CommitmentStatusViolated
	case "early exit", "early_exit", "early-exit":
		return domain.CommitmentStatusEarlyExit
	}
	return domain.CommitmentStatusActive
}

// toVerdict coerces an attestation verdict. Comparison is against the
// lowercase spellings only; anything else, including absence, is unknown.
func toVerdict(value string) domain.AttestationVerdict {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pass":
		return domain.AttestationVerdictPass
	case "fail":
		return domain.AttestationVerdictFail
	}
	return domain.AttestationVerdictUnknown
}

// observedAtLayouts are the timestamp spellings chain data has been seen in.
var observedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// toISODate coerces a chain timestamp (RFC3339-ish string, unix-millisecond
// number or time.Time) into an RFC3339 string, defaulting to now when the
// value is absent or unparseable.
func toISODate(value any, now func() time.Time) string {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case float64:
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339)
	case string:
		for _, layout := range observedAtLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	return now().UTC().Format(time.RFC3339)
}

// MapCommitmentFromChain normalizes a chain commitment record into the
// client-facing DTO. The asset code defaults to XLM and the issuer is nil
// exactly when the asset is XLM.
func MapCommitmentFromChain(model chain.Commitment) Commitment {
	assetCode := model.AssetCode
	if assetCode == "" {
		assetCode = domain.DefaultAssetCode
	}

	var issuer *string
	if assetCode != domain.DefaultAssetCode && model.AssetIssuer != "" {
		v := model.AssetIssuer
		issuer = &v
	}

	var nftTokenID *string
	if model.NFTTokenID != nil {
		v := stringify(model.NFTTokenID)
		nftTokenID = &v
	}

	return Commitment{
		CommitmentID:   stringify(model.ID),
		OwnerAddress:   model.OwnerAddress,
		Amount:         stringify(model.Amount),
		AssetCode:      assetCode,
		AssetIssuer:    issuer,
		DurationDays:   toInt(model.DurationDays),
		MaxLossPercent: toInt(model.MaxLossPercent),
		CommitmentType: toCommitmentType(model.CommitmentType),
		Status:         toCommitmentStatus(model.Status),
		NFTTokenID:     nftTokenID,
	}
}

// MapAttestationFromChain normalizes a chain attestation record. Details
// are passed through only when present, never defaulted to an empty value.
func MapAttestationFromChain(model chain.Attestation) Attestation {
	return Attestation{
		AttestationID: stringify(model.ID),
		CommitmentID:  stringify(model.CommitmentID),
		OwnerAddress:  model.OwnerAddress,
		Kind:          model.Kind,
		Verdict:       toVerdict(model.Verdict),
		ObservedAt:    toISODate(model.ObservedAt, time.Now),
		Details:       model.Details,
	}
}
