package domain

import "strings"

// Platform identifies an external account provider.
type Platform string

// Platform constants
const (
	// PlatformGitHub is served by the GitHub REST API
	PlatformGitHub Platform = "github"
	// PlatformLeetCode is served by the LeetCode GraphQL endpoint
	PlatformLeetCode Platform = "leetcode"
)

// Platforms lists every supported platform in a fixed order.
var Platforms = []Platform{PlatformGitHub, PlatformLeetCode}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// DataSource tags the provenance of a stats record.
type DataSource string

const (
	// SourceLive marks data normalized from a real upstream response.
	SourceLive DataSource = "live"
	// SourceSynthetic marks data produced by the fallback synthesizer.
	SourceSynthetic DataSource = "synthetic"
)
