package synth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/normalize"
)

type tagSeed struct {
	name, slug string
}

var (
	advancedTags = []tagSeed{
		{"Dynamic Programming", "dynamic-programming"},
		{"Backtracking", "backtracking"},
		{"Union Find", "union-find"},
		{"Trie", "trie"},
	}
	intermediateTags = []tagSeed{
		{"Hash Table", "hash-table"},
		{"Math", "math"},
		{"Greedy", "greedy"},
		{"Binary Search", "binary-search"},
		{"Depth-First Search", "depth-first-search"},
	}
	fundamentalTags = []tagSeed{
		{"Array", "array"},
		{"String", "string"},
		{"Sorting", "sorting"},
		{"Two Pointers", "two-pointers"},
		{"Linked List", "linked-list"},
	}
	problems = []tagSeed{
		{"Two Sum", "two-sum"},
		{"Valid Parentheses", "valid-parentheses"},
		{"Merge Intervals", "merge-intervals"},
		{"LRU Cache", "lru-cache"},
		{"Number of Islands", "number-of-islands"},
		{"Longest Palindromic Substring", "longest-palindromic-substring"},
		{"Coin Change", "coin-change"},
		{"Course Schedule", "course-schedule"},
		{"Trapping Rain Water", "trapping-rain-water"},
		{"Word Break", "word-break"},
	}
	badgeNames = []string{"50 Days Badge", "100 Days Badge", "Knight", "Guardian"}
	langs      = []string{"golang", "python3", "java", "cpp", "typescript"}
	statuses   = []string{"Accepted", "Accepted", "Accepted", "Wrong Answer", "Time Limit Exceeded"}
)

// LeetCode synthesizes a LeetCodeStats record for username.
func LeetCode(username string) *domain.LeetCodeStats {
	g := newLCG(username)
	seed := Seed(username)
	login := strings.TrimSpace(username)

	stats := domain.NewLeetCodeStats()
	stats.Username = login
	stats.RealName = login
	stats.Avatar = fmt.Sprintf("https://assets.leetcode.com/users/avatars/avatar_%d.png", seed)
	stats.Ranking = g.between(10000, 2000000)
	stats.Reputation = g.between(0, 500)
	stats.StarRating = float64(g.between(1, 5))
	stats.EasySolved = g.between(20, 300)
	stats.MediumSolved = g.between(10, 400)
	stats.HardSolved = g.between(0, 120)
	stats.TotalSolved = stats.EasySolved + stats.MediumSolved + stats.HardSolved
	stats.DataSource = domain.SourceSynthetic

	stats.TopTags = normalize.MergeTags(
		synthTags(g, advancedTags, domain.TierAdvanced, stats.HardSolved),
		synthTags(g, intermediateTags, domain.TierIntermediate, stats.MediumSolved),
		synthTags(g, fundamentalTags, domain.TierFundamental, stats.EasySolved),
	)

	for i, name := range badgeNames[:g.between(0, len(badgeNames))] {
		stats.Badges = append(stats.Badges, domain.Badge{
			ID:           strconv.Itoa(int(seed) + i),
			Name:         name,
			DisplayName:  name,
			Icon:         "https://assets.leetcode.com/static_assets/marketing/" + strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".png",
			CreationDate: daysBefore(g.between(0, 700))[:10],
		})
	}

	for _, d := range []string{normalize.DifficultyEasy, normalize.DifficultyMedium, normalize.DifficultyHard} {
		stats.BeatsStats = append(stats.BeatsStats, domain.BeatsStat{
			Difficulty: d,
			Percentage: g.percent(30, 99),
		})
	}

	if attended := g.between(0, 40); attended > 0 {
		total := g.between(20000, 30000)
		stats.Contest = &domain.ContestRanking{
			AttendedContestsCount: attended,
			Rating:                float64(g.between(140000, 250000)) / 100,
			GlobalRanking:         g.between(1000, 500000),
			TotalParticipants:     total,
			TopPercentage:         g.percent(1, 60),
		}
	}

	base := epoch.Unix()
	for i := 0; i < leetcode.RecentSubmissionsLimit; i++ {
		p := pick(g, problems)
		base -= int64(g.between(600, 86400))
		stats.RecentSubmissions = append(stats.RecentSubmissions, domain.Submission{
			Title:         p.name,
			TitleSlug:     p.slug,
			Timestamp:     strconv.FormatInt(base, 10),
			StatusDisplay: pick(g, statuses),
			Lang:          pick(g, langs),
		})
	}

	return stats
}

func synthTags(g *lcg, tags []tagSeed, tier string, ceiling int) []domain.TagCount {
	out := make([]domain.TagCount, 0, len(tags))
	for _, t := range tags {
		out = append(out, domain.TagCount{
			TagName:        t.name,
			TagSlug:        t.slug,
			ProblemsSolved: g.between(0, ceiling),
			Tier:           tier,
		})
	}
	return out
}
