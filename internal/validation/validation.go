// Package validation parses untrusted HTTP input into typed domain
// commands. The strict parsers fail fast with the first violated rule; the
// legacy filter validator aggregates unrelated type errors and survives
// only for the list endpoints.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/domain"
)

// addressPattern matches Stellar account (G...) and contract (C...)
// addresses: a leading G or C followed by exactly 55 base32 characters.
var addressPattern = regexp.MustCompile(`^[GC][A-Z2-7]{55}$`)

const (
	minDurationDays   = 1
	maxDurationDays   = 3650
	minMaxLossPercent = 0
	maxMaxLossPercent = 100
)

var commitmentTypes = []string{
	string(domain.CommitmentTypeSafe),
	string(domain.CommitmentTypeBalanced),
	string(domain.CommitmentTypeAggressive),
}

// Pagination holds validated pagination parameters.
type Pagination struct {
	Page  int
	Limit int
}

// IsValidAddress reports whether s is a well-formed Stellar address.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ValidateAddress checks a Stellar address and names the offending field in
// the returned error.
func ValidateAddress(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperr.Validation(
			fmt.Sprintf("%s is required and must be a non-empty string.", field),
			map[string]any{"field": field},
		)
	}
	if !addressPattern.MatchString(trimmed) {
		return "", apperr.Validation(
			fmt.Sprintf("%s is not a valid Stellar address.", field),
			map[string]any{"field": field},
		)
	}
	return trimmed, nil
}

// ValidateAmount accepts a JSON number or a numeric string and returns the
// amount as a decimal string. The value must parse to a finite positive
// decimal.
func ValidateAmount(value any, field string) (string, error) {
	var dec decimal.Decimal

	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			return "", apperr.Validation(
				fmt.Sprintf("%s must be a number or numeric string.", field),
				map[string]any{"field": field},
			)
		}
		dec = parsed
		if dec.IsPositive() {
			return trimmed, nil
		}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", apperr.Validation(
				fmt.Sprintf("%s must be a finite number.", field),
				map[string]any{"field": field},
			)
		}
		dec = decimal.NewFromFloat(v)
		if dec.IsPositive() {
			return dec.String(), nil
		}
	default:
		return "", apperr.Validation(
			fmt.Sprintf("%s must be a number or numeric string.", field),
			map[string]any{"field": field},
		)
	}

	return "", apperr.Validation(
		fmt.Sprintf("%s must be a positive number.", field),
		map[string]any{"field": field},
	)
}

// decodeObject enforces the first two body rules: the body must be valid
// JSON and must decode to a non-null, non-array object.
func decodeObject(body []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperr.Validation("Request body must be valid JSON.", nil)
	}
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, apperr.Validation("Request body must be a JSON object.", nil)
	}
	return obj, nil
}

// requireString enforces presence, string type and non-emptiness after
// trimming for a required field.
func requireString(obj map[string]any, field string) (string, error) {
	value, present := obj[field]
	if present {
		if s, ok := value.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, nil
			}
		}
	}
	return "", apperr.Validation(
		fmt.Sprintf("%s is required and must be a non-empty string.", field),
		map[string]any{"field": field},
	)
}

// optionalString returns the trimmed value of an optional string field. A
// present non-string value is a validation error; absence is not.
func optionalString(obj map[string]any, field string) (string, bool, error) {
	value, present := obj[field]
	if !present || value == nil {
		return "", false, nil
	}
	s, ok := value.(string)
	if !ok {
		return "", false, apperr.Validation(
			fmt.Sprintf("%s must be a string.", field),
			map[string]any{"field": field},
		)
	}
	return strings.TrimSpace(s), true, nil
}

// intInRange enforces that a required field is a true integer within
// [min, max] inclusive.
func intInRange(obj map[string]any, field string, min, max int) (int, error) {
	rangeErr := apperr.Validation(
		fmt.Sprintf("%s must be an integer between %d and %d.", field, min, max),
		map[string]any{"field": field},
	)

	value, present := obj[field]
	if !present {
		return 0, rangeErr
	}
	f, ok := value.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, rangeErr
	}
	n := int(f)
	if n < min || n > max {
		return 0, rangeErr
	}
	return n, nil
}

// enumMember case-insensitively matches a required field against allowed
// values and returns the lowercase canonical form.
func enumMember(obj map[string]any, field string, allowed []string) (string, error) {
	raw, err := requireString(obj, field)
	if err != nil {
		return "", err
	}
	normalized := strings.ToLower(raw)
	if !lo.Contains(allowed, normalized) {
		return "", apperr.Validation(
			fmt.Sprintf("%s must be one of: %s.", field, strings.Join(allowed, ", ")),
			map[string]any{"field": field},
		)
	}
	return normalized, nil
}

// parseSignatureContext parses the optional signatureContext object. When a
// signer address is present it must be a well-formed Stellar address and
// must match the commitment owner case-insensitively; a mismatch is a
// forbidden error rather than a validation one, since it signals an attempt
// to act on someone else's commitment.
func parseSignatureContext(obj map[string]any, ownerAddress string) (*domain.SignatureContext, error) {
	value, present := obj["signatureContext"]
	if !present || value == nil {
		return nil, nil
	}
	ctxObj, ok := value.(map[string]any)
	if !ok {
		return nil, apperr.Validation(
			"signatureContext must be an object.",
			map[string]any{"field": "signatureContext"},
		)
	}

	nonce, _, err := optionalString(ctxObj, "nonce")
	if err != nil {
		return nil, err
	}
	signature, _, err := optionalString(ctxObj, "signature")
	if err != nil {
		return nil, err
	}
	signer, hasSigner, err := optionalString(ctxObj, "signerAddress")
	if err != nil {
		return nil, err
	}
	if hasSigner && signer != "" {
		if !addressPattern.MatchString(signer) {
			return nil, apperr.Validation(
				"signatureContext.signerAddress is not a valid Stellar address.",
				map[string]any{"field": "signatureContext.signerAddress"},
			)
		}
		if !strings.EqualFold(signer, ownerAddress) {
			return nil, apperr.Forbidden(
				"Signature signer does not match the commitment owner.",
				map[string]any{"field": "signatureContext.signerAddress"},
			)
		}
	}

	return &domain.SignatureContext{
		Nonce:         nonce,
		Signature:     signature,
		SignerAddress: signer,
	}, nil
}

// ParseCreateCommitmentInput parses a create-commitment request body into a
// typed command, applying the body rules in their required order and
// failing fast on the first violation.
func ParseCreateCommitmentInput(body []byte) (*domain.CreateCommitmentInput, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	owner, err := requireString(obj, "ownerAddress")
	if err != nil {
		return nil, err
	}
	if _, err := ValidateAddress(owner, "ownerAddress"); err != nil {
		return nil, err
	}

	amountRaw, present := obj["amount"]
	if !present {
		return nil, apperr.Validation(
			"amount is required.",
			map[string]any{"field": "amount"},
		)
	}
	amount, err := ValidateAmount(amountRaw, "amount")
	if err != nil {
		return nil, err
	}

	assetCode, hasAsset, err := optionalString(obj, "assetCode")
	if err != nil {
		return nil, err
	}
	if !hasAsset || assetCode == "" {
		assetCode = domain.DefaultAssetCode
	} else {
		assetCode = strings.ToUpper(assetCode)
	}

	durationDays, err := intInRange(obj, "durationDays", minDurationDays, maxDurationDays)
	if err != nil {
		return nil, err
	}

	maxLossPercent, err := intInRange(obj, "maxLossPercent", minMaxLossPercent, maxMaxLossPercent)
	if err != nil {
		return nil, err
	}

	commitmentType, err := enumMember(obj, "commitmentType", commitmentTypes)
	if err != nil {
		return nil, err
	}

	sigCtx, err := parseSignatureContext(obj, owner)
	if err != nil {
		return nil, err
	}

	// XLM commitments never carry an issuer; anything else requires one.
	var issuer *string
	if assetCode != domain.DefaultAssetCode {
		issuerRaw, hasIssuer, err := optionalString(obj, "assetIssuer")
		if err != nil {
			return nil, err
		}
		if !hasIssuer || issuerRaw == "" {
			return nil, apperr.Validation(
				fmt.Sprintf("assetIssuer is required for non-%s assets.", domain.DefaultAssetCode),
				map[string]any{"field": "assetIssuer"},
			)
		}
		validated, err := ValidateAddress(issuerRaw, "assetIssuer")
		if err != nil {
			return nil, err
		}
		issuer = &validated
	}

	return &domain.CreateCommitmentInput{
		OwnerAddress:     owner,
		Amount:           amount,
		AssetCode:        assetCode,
		AssetIssuer:      issuer,
		DurationDays:     durationDays,
		MaxLossPercent:   maxLossPercent,
		CommitmentType:   domain.CommitmentType(commitmentType),
		SignatureContext: sigCtx,
	}, nil
}

// ParseEarlyExitInput parses an early-exit request body into a typed
// command.
func ParseEarlyExitInput(body []byte) (*domain.EarlyExitInput, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	owner, err := requireString(obj, "ownerAddress")
	if err != nil {
		return nil, err
	}
	if _, err := ValidateAddress(owner, "ownerAddress"); err != nil {
		return nil, err
	}

	currentStatus, hasStatus, err := optionalString(obj, "currentStatus")
	if err != nil {
		return nil, err
	}

	sigCtx, err := parseSignatureContext(obj, owner)
	if err != nil {
		return nil, err
	}

	return &domain.EarlyExitInput{
		OwnerAddress:     owner,
		CurrentStatus:    strings.ToLower(currentStatus),
		HasCurrentStatus: hasStatus,
		SignatureContext: sigCtx,
	}, nil
}

// ParsePagination validates page/limit query parameters. Page defaults to 1
// and must be a positive integer; limit defaults to 10 and must be within
// [1, 100].
func ParsePagination(values url.Values) (Pagination, error) {
	p := Pagination{Page: 1, Limit: 10}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Pagination{}, apperr.Validation(
				"page must be a positive integer.",
				map[string]any{"field": "page"},
			)
		}
		p.Page = page
	}

	limitRaw := values.Get("limit")
	if limitRaw == "" {
		// Some clients send pageSize; accept it as an alias.
		limitRaw = values.Get("pageSize")
	}
	if limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil || limit < 1 || limit > 100 {
			return Pagination{}, apperr.Validation(
				"limit must be an integer between 1 and 100.",
				map[string]any{"field": "limit"},
			)
		}
		p.Limit = limit
	}

	return p, nil
}

// ParseFilters is the legacy filter validator used by the list endpoints.
// Unlike the strict parsers it aggregates unrelated type errors into one
// validation error; nil and empty values are skipped rather than rejected.
func ParseFilters(filters map[string]any) (map[string]any, error) {
	validated := make(map[string]any, len(filters))
	var fieldErrors []string

	for key, value := range filters {
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if v == "" {
				continue
			}
			validated[key] = v
		case float64, int, bool:
			validated[key] = v
		default:
			fieldErrors = append(fieldErrors, fmt.Sprintf("filter %s must be a string, number, or boolean", key))
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperr.Validation("Invalid filter parameters.", map[string]any{"errors": fieldErrors})
	}
	return validated, nil
}
