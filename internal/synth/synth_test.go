package synth

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/normalize"
)

func TestSeed(t *testing.T) {
	assert.Equal(t, uint32(0), Seed(""))
	assert.Equal(t, uint32('a'+'b'), Seed("ab"))
	assert.Equal(t, Seed("ab"), Seed("ba"))
	assert.Equal(t, uint32(10000), Seed(strings.Repeat("z", 5000)))
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := New()
	for _, platform := range domain.Platforms {
		for _, username := range []string{"octocat", "alice", "x", "someone-with-a-long-name"} {
			t.Run(string(platform)+"/"+username, func(t *testing.T) {
				// Act
				first, err := s.Synthesize(platform, username)
				require.NoError(t, err)
				second, err := New().Synthesize(platform, username)
				require.NoError(t, err)

				// Assert
				a, err := json.Marshal(first)
				require.NoError(t, err)
				b, err := json.Marshal(second)
				require.NoError(t, err)
				assert.Equal(t, string(a), string(b))
				assert.Equal(t, domain.SourceSynthetic, first.Source())
				assert.Equal(t, platform, first.StatsPlatform())
			})
		}
	}
}

func TestSynthesize_UnsupportedPlatform(t *testing.T) {
	stats, err := New().Synthesize("myspace", "tom")

	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))
}

func TestGitHub_Invariants(t *testing.T) {
	for _, username := range []string{"octocat", "bob", "zz-top", "a"} {
		t.Run(username, func(t *testing.T) {
			// Act
			stats := GitHub(username)

			// Assert
			assert.Equal(t, username, stats.Username)
			assert.LessOrEqual(t, len(stats.TopRepos), normalize.TopN)
			assert.LessOrEqual(t, len(stats.TopLanguages), normalize.TopN)
			assert.NotEmpty(t, stats.TopRepos)

			for i := 1; i < len(stats.TopRepos); i++ {
				assert.GreaterOrEqual(t, stats.TopRepos[i-1].Stars, stats.TopRepos[i].Stars)
			}
			for i := 1; i < len(stats.TopLanguages); i++ {
				assert.GreaterOrEqual(t, stats.TopLanguages[i-1].Count, stats.TopLanguages[i].Count)
			}
		})
	}
}

func TestLeetCode_Invariants(t *testing.T) {
	for _, username := range []string{"alice", "bob", "carol", "d"} {
		t.Run(username, func(t *testing.T) {
			// Act
			stats := LeetCode(username)

			// Assert
			assert.Equal(t, stats.EasySolved+stats.MediumSolved+stats.HardSolved, stats.TotalSolved)
			assert.Len(t, stats.RecentSubmissions, leetcode.RecentSubmissionsLimit)
			assert.LessOrEqual(t, len(stats.TopTags), normalize.TopN)
			assert.Len(t, stats.BeatsStats, 3)

			for i := 1; i < len(stats.TopTags); i++ {
				assert.GreaterOrEqual(t, stats.TopTags[i-1].ProblemsSolved, stats.TopTags[i].ProblemsSolved)
			}

			last := int64(1 << 62)
			for _, s := range stats.RecentSubmissions {
				ts, err := strconv.ParseInt(s.Timestamp, 10, 64)
				require.NoError(t, err)
				assert.Less(t, ts, last)
				last = ts
			}
		})
	}
}

// jsonKeys returns the sorted top-level keys of v's JSON form.
func jsonKeys(t *testing.T, v interface{}) []string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestSynthesizedShapeMatchesNormalized(t *testing.T) {
	n := normalize.New()

	liveGitHub, err := n.Normalize(&github.Payload{User: github.User{Login: "octocat"}})
	require.NoError(t, err)
	liveLeetCode, err := n.Normalize(&leetcode.Payload{MatchedUser: &leetcode.MatchedUser{Username: "alice"}})
	require.NoError(t, err)

	assert.Equal(t, jsonKeys(t, liveGitHub), jsonKeys(t, GitHub("octocat")))
	assert.Equal(t, jsonKeys(t, liveLeetCode), jsonKeys(t, LeetCode("alice")))
}

func TestLCG_Between(t *testing.T) {
	g := newLCG("range")
	for i := 0; i < 1000; i++ {
		v := g.between(3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 8)
	}
	assert.Equal(t, 4, g.between(4, 4))
}
