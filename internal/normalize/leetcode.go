package normalize

import (
	"sort"

	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

// Difficulty labels of the accepted-submission breakdown.
const (
	DifficultyAll    = "All"
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// LeetCode converts a LeetCode payload into LeetCodeStats.
// p.MatchedUser must be non-nil.
func LeetCode(p *leetcode.Payload) *domain.LeetCodeStats {
	u := p.MatchedUser
	stats := domain.NewLeetCodeStats()
	stats.Username = u.Username
	stats.DataSource = domain.SourceLive

	if u.Profile != nil {
		stats.RealName = deref(u.Profile.RealName)
		stats.Avatar = deref(u.Profile.UserAvatar)
		stats.Ranking = deref(u.Profile.Ranking)
		stats.Reputation = deref(u.Profile.Reputation)
		stats.StarRating = deref(u.Profile.StarRating)
	}

	var counts []leetcode.DifficultyCount
	if u.SubmitStats != nil {
		counts = u.SubmitStats.ACSubmissionNum
	}
	stats.TotalSolved = solvedFor(counts, DifficultyAll)
	stats.EasySolved = solvedFor(counts, DifficultyEasy)
	stats.MediumSolved = solvedFor(counts, DifficultyMedium)
	stats.HardSolved = solvedFor(counts, DifficultyHard)

	for _, b := range u.Badges {
		stats.Badges = append(stats.Badges, domain.Badge{
			ID:           b.ID,
			Name:         b.Name,
			DisplayName:  b.DisplayName,
			Icon:         b.Icon,
			CreationDate: deref(b.CreationDate),
		})
	}

	if t := u.TagProblemCounts; t != nil {
		stats.TopTags = MergeTags(
			convertTags(t.Advanced, domain.TierAdvanced),
			convertTags(t.Intermediate, domain.TierIntermediate),
			convertTags(t.Fundamental, domain.TierFundamental),
		)
	}

	for _, b := range u.ProblemsSolvedBeatsStats {
		stats.BeatsStats = append(stats.BeatsStats, domain.BeatsStat{
			Difficulty: b.Difficulty,
			Percentage: deref(b.Percentage),
		})
	}

	if c := p.UserContestRanking; c != nil {
		stats.Contest = &domain.ContestRanking{
			AttendedContestsCount: c.AttendedContestsCount,
			Rating:                c.Rating,
			GlobalRanking:         c.GlobalRanking,
			TotalParticipants:     c.TotalParticipants,
			TopPercentage:         deref(c.TopPercentage),
		}
	}

	for _, s := range p.RecentSubmissionList {
		stats.RecentSubmissions = append(stats.RecentSubmissions, domain.Submission{
			Title:         s.Title,
			TitleSlug:     s.TitleSlug,
			Timestamp:     s.Timestamp,
			StatusDisplay: s.StatusDisplay,
			Lang:          s.Lang,
		})
	}

	return stats
}

// solvedFor returns the count for an exact difficulty label, or 0 when absent.
// "All" is never derived from the other buckets.
func solvedFor(counts []leetcode.DifficultyCount, difficulty string) int {
	for _, c := range counts {
		if c.Difficulty == difficulty {
			return c.Count
		}
	}
	return 0
}

// MergeTags concatenates the tiers in the given order, sorts by problems solved
// descending and keeps the top entries. Ties keep concatenation order.
func MergeTags(tiers ...[]domain.TagCount) []domain.TagCount {
	merged := make([]domain.TagCount, 0)
	for _, tier := range tiers {
		merged = append(merged, tier...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ProblemsSolved > merged[j].ProblemsSolved
	})
	return truncate(merged, TopN)
}

func convertTags(tags []leetcode.TagCount, tier string) []domain.TagCount {
	out := make([]domain.TagCount, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.TagCount{
			TagName:        t.TagName,
			TagSlug:        t.TagSlug,
			ProblemsSolved: t.ProblemsSolved,
			Tier:           tier,
		})
	}
	return out
}
