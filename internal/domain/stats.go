package domain

// Stats is the canonical statistics record of one platform.
// Implementations serialize every field on every response, whatever the data source,
// so consumers never special-case synthesized data.
type Stats interface {
	StatsPlatform() Platform
	Source() DataSource
}

// NewStats returns an empty record for the platform, suitable as a decode target.
func NewStats(p Platform) (Stats, bool) {
	switch p {
	case PlatformGitHub:
		return NewGitHubStats(), true
	case PlatformLeetCode:
		return NewLeetCodeStats(), true
	default:
		return nil, false
	}
}

// PlatformBinding links a stored profile to an account on one platform.
// It is owned by the profile store and only read here.
type PlatformBinding struct {
	Name     Platform
	Username string
}
