package normalize

import (
	"sort"

	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

// GitHub converts a GitHub payload into GitHubStats.
func GitHub(p *github.Payload) *domain.GitHubStats {
	stats := domain.NewGitHubStats()
	stats.Username = p.User.Login
	stats.Name = deref(p.User.Name)
	stats.AvatarURL = p.User.AvatarURL
	stats.Bio = deref(p.User.Bio)
	stats.ProfileURL = p.User.HTMLURL
	stats.Location = deref(p.User.Location)
	stats.Company = deref(p.User.Company)
	stats.Followers = p.User.Followers
	stats.Following = p.User.Following
	stats.PublicRepos = p.User.PublicRepos
	stats.PublicGists = p.User.PublicGists
	stats.CreatedAt = p.User.CreatedAt
	stats.DataSource = domain.SourceLive

	repos := make([]domain.Repository, 0, len(p.Repos))
	for _, r := range p.Repos {
		repos = append(repos, domain.Repository{
			Name:        r.Name,
			Description: deref(r.Description),
			URL:         r.HTMLURL,
			Stars:       r.StargazersCount,
			Forks:       r.ForksCount,
			Language:    deref(r.Language),
			UpdatedAt:   r.UpdatedAt,
		})
	}

	SummarizeRepos(stats, repos)
	return stats
}

// SummarizeRepos fills the aggregate fields of stats from repos, which must be in
// upstream order: star and fork totals, the top languages by repository count and
// the top repositories by stars. Ties keep upstream order.
func SummarizeRepos(stats *domain.GitHubStats, repos []domain.Repository) {
	stats.TotalStars = 0
	stats.TotalForks = 0
	for _, r := range repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
	}

	stats.TopLanguages = topLanguages(repos)
	stats.TopRepos = topRepos(repos)
}

func topLanguages(repos []domain.Repository) []domain.LanguageCount {
	counts := make([]domain.LanguageCount, 0)
	index := make(map[string]int)
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		i, seen := index[r.Language]
		if !seen {
			i = len(counts)
			index[r.Language] = i
			counts = append(counts, domain.LanguageCount{Language: r.Language})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return truncate(counts, TopN)
}

func topRepos(repos []domain.Repository) []domain.Repository {
	sorted := make([]domain.Repository, len(repos))
	copy(sorted, repos)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})
	return truncate(sorted, TopN)
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
