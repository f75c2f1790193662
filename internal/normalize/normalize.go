// Package normalize maps raw upstream payloads onto the canonical stats records.
//
// Every optional upstream field is defaulted here, so a normalized record always
// carries the full field set of its platform regardless of upstream completeness.
package normalize

import (
	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

// TopN is the length of every truncated list in a normalized record.
const TopN = 5

// Normalizer converts payloads of any supported platform.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize shapes payload into its platform's stats record.
// An unknown payload type yields a malformed-payload failure.
func (n *Normalizer) Normalize(payload api.Payload) (domain.Stats, error) {
	switch p := payload.(type) {
	case *github.Payload:
		if p == nil {
			return nil, api.NewMalformed(domain.PlatformGitHub, "nil payload")
		}
		return GitHub(p), nil
	case *leetcode.Payload:
		if p == nil || p.MatchedUser == nil {
			return nil, api.NewMalformed(domain.PlatformLeetCode, "payload has no matched user")
		}
		return LeetCode(p), nil
	default:
		return nil, &api.Failure{
			Kind: api.FailureMalformed,
			Err:  errUnknownPayload{payload: payload},
		}
	}
}

type errUnknownPayload struct {
	payload api.Payload
}

func (e errUnknownPayload) Error() string {
	if e.payload == nil {
		return "no payload"
	}
	return "unsupported payload for platform " + string(e.payload.Platform())
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
