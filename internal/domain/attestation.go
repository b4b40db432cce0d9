package domain

// AttestationVerdict is a third-party observation about a commitment's
// compliance. Anything a verifier reports outside pass/fail is surfaced as
// unknown rather than dropped.
type AttestationVerdict string

const (
	AttestationVerdictPass    AttestationVerdict = "pass"
	AttestationVerdictFail    AttestationVerdict = "fail"
	AttestationVerdictUnknown AttestationVerdict = "unknown"
)
