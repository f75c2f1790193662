package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

func matchedUser(counts ...leetcode.DifficultyCount) *leetcode.MatchedUser {
	u := &leetcode.MatchedUser{Username: "alice"}
	u.SubmitStats = &struct {
		ACSubmissionNum []leetcode.DifficultyCount `json:"acSubmissionNum"`
	}{ACSubmissionNum: counts}
	return u
}

func TestLeetCode_SolvedCounts(t *testing.T) {
	// Arrange
	p := &leetcode.Payload{MatchedUser: matchedUser(
		leetcode.DifficultyCount{Difficulty: "All", Count: 30},
		leetcode.DifficultyCount{Difficulty: "Easy", Count: 20},
		leetcode.DifficultyCount{Difficulty: "Medium", Count: 8},
		leetcode.DifficultyCount{Difficulty: "Hard", Count: 2},
	)}

	// Act
	stats := LeetCode(p)

	// Assert
	assert.Equal(t, 30, stats.TotalSolved)
	assert.Equal(t, 20, stats.EasySolved)
	assert.Equal(t, 8, stats.MediumSolved)
	assert.Equal(t, 2, stats.HardSolved)
	assert.Equal(t, domain.SourceLive, stats.DataSource)
}

func TestLeetCode_MissingAllIsZero(t *testing.T) {
	// Arrange
	p := &leetcode.Payload{MatchedUser: matchedUser(
		leetcode.DifficultyCount{Difficulty: "Easy", Count: 20},
		leetcode.DifficultyCount{Difficulty: "Medium", Count: 8},
	)}

	// Act
	stats := LeetCode(p)

	// Assert
	assert.Equal(t, 0, stats.TotalSolved)
	assert.Equal(t, 0, stats.HardSolved)
	assert.Equal(t, 20, stats.EasySolved)
}

func TestLeetCode_LabelsMatchExactly(t *testing.T) {
	// Arrange
	p := &leetcode.Payload{MatchedUser: matchedUser(
		leetcode.DifficultyCount{Difficulty: "all", Count: 99},
		leetcode.DifficultyCount{Difficulty: "Easy ", Count: 5},
	)}

	// Act
	stats := LeetCode(p)

	// Assert
	assert.Zero(t, stats.TotalSolved)
	assert.Zero(t, stats.EasySolved)
}

func TestLeetCode_EmptyUser(t *testing.T) {
	// Arrange
	p := &leetcode.Payload{MatchedUser: &leetcode.MatchedUser{Username: "alice"}}

	// Act
	stats := LeetCode(p)

	// Assert
	assert.Equal(t, "alice", stats.Username)
	assert.Nil(t, stats.Contest)
	assert.NotNil(t, stats.Badges)
	assert.NotNil(t, stats.TopTags)
	assert.NotNil(t, stats.BeatsStats)
	assert.NotNil(t, stats.RecentSubmissions)
}

func TestLeetCode_Contest(t *testing.T) {
	// Arrange
	top := 12.5
	p := &leetcode.Payload{
		MatchedUser: matchedUser(),
		UserContestRanking: &leetcode.ContestRanking{
			AttendedContestsCount: 3,
			Rating:                1650.2,
			GlobalRanking:         4000,
			TotalParticipants:     25000,
			TopPercentage:         &top,
		},
	}

	// Act
	stats := LeetCode(p)

	// Assert
	require.NotNil(t, stats.Contest)
	assert.Equal(t, 3, stats.Contest.AttendedContestsCount)
	assert.Equal(t, 12.5, stats.Contest.TopPercentage)
}

func TestLeetCode_TopTags(t *testing.T) {
	// Arrange
	u := matchedUser()
	u.TagProblemCounts = &leetcode.TagProblemCounts{
		Advanced: []leetcode.TagCount{
			{TagName: "Dynamic Programming", TagSlug: "dp", ProblemsSolved: 7},
			{TagName: "Trie", TagSlug: "trie", ProblemsSolved: 1},
		},
		Intermediate: []leetcode.TagCount{
			{TagName: "Hash Table", TagSlug: "hash-table", ProblemsSolved: 7},
			{TagName: "Math", TagSlug: "math", ProblemsSolved: 9},
		},
		Fundamental: []leetcode.TagCount{
			{TagName: "Array", TagSlug: "array", ProblemsSolved: 20},
			{TagName: "String", TagSlug: "string", ProblemsSolved: 7},
		},
	}

	// Act
	stats := LeetCode(&leetcode.Payload{MatchedUser: u})

	// Assert
	require.Len(t, stats.TopTags, TopN)
	slugs := make([]string, 0, TopN)
	for _, tag := range stats.TopTags {
		slugs = append(slugs, tag.TagSlug)
	}
	assert.Equal(t, []string{"array", "math", "dp", "hash-table", "string"}, slugs)
	assert.Equal(t, domain.TierAdvanced, stats.TopTags[2].Tier)
	assert.Equal(t, domain.TierFundamental, stats.TopTags[4].Tier)
}

func TestMergeTags_FewerThanTopN(t *testing.T) {
	got := MergeTags([]domain.TagCount{{TagSlug: "a", ProblemsSolved: 1}}, nil)
	assert.Equal(t, []domain.TagCount{{TagSlug: "a", ProblemsSolved: 1}}, got)

	assert.NotNil(t, MergeTags())
	assert.Empty(t, MergeTags())
}
