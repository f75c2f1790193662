// Package synth produces substitute stats records when an upstream platform is
// unavailable. Output is a pure function of (platform, username): the only entropy
// is a seed derived from the username, and timestamps are offsets from a fixed epoch.
package synth

import (
	"errors"
	"fmt"
	"time"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

// ErrUnsupportedPlatform is returned for platforms without a synthesizer.
var ErrUnsupportedPlatform = errors.New("synth: unsupported platform")

// SeedRange bounds every seed.
const SeedRange = 100000

// epoch anchors all synthesized timestamps.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Seed sums the character codes of username into [0, SeedRange).
func Seed(username string) uint32 {
	var sum uint32
	for _, r := range username {
		sum = (sum + uint32(r)) % SeedRange
	}
	return sum
}

// Synthesizer builds substitute records.
type Synthesizer struct{}

// New creates a Synthesizer.
func New() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize returns the substitute record for username on platform.
func (s *Synthesizer) Synthesize(platform domain.Platform, username string) (domain.Stats, error) {
	switch platform {
	case domain.PlatformGitHub:
		return GitHub(username), nil
	case domain.PlatformLeetCode:
		return LeetCode(username), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

// lcg is a linear congruential generator (glibc constants, modulus 2^31).
type lcg struct {
	state uint32
}

func newLCG(username string) *lcg {
	return &lcg{state: Seed(username)}
}

func (g *lcg) next() uint32 {
	g.state = (g.state*1103515245 + 12345) & 0x7fffffff
	return g.state
}

// between returns a value in [lo, hi].
func (g *lcg) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(g.next()>>8)%(hi-lo+1)
}

// pick returns one element of choices.
func pick[T any](g *lcg, choices []T) T {
	return choices[g.between(0, len(choices)-1)]
}

// percent returns a value in [lo, hi] with two decimals.
func (g *lcg) percent(lo, hi int) float64 {
	return float64(g.between(lo*100, hi*100)) / 100
}

func daysBefore(days int) string {
	return epoch.AddDate(0, 0, -days).Format(time.RFC3339)
}
