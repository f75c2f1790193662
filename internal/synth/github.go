package synth

import (
	"fmt"
	"strings"

	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/normalize"
)

var (
	repoNames = []string{
		"portfolio", "dotfiles", "api-server", "cli-tools", "web-app",
		"algorithms", "blog", "notes", "chat-app", "ml-playground",
		"data-pipeline", "game-engine",
	}
	repoDescriptions = []string{
		"Personal project",
		"Experiments and prototypes",
		"A small tool I use every day",
		"Learning project",
		"",
	}
	languages = []string{
		"Go", "TypeScript", "Python", "JavaScript", "Rust", "Java", "C++",
	}
)

// GitHub synthesizes a GitHubStats record for username.
func GitHub(username string) *domain.GitHubStats {
	g := newLCG(username)
	seed := Seed(username)
	login := strings.TrimSpace(username)

	stats := domain.NewGitHubStats()
	stats.Username = login
	stats.Name = login
	stats.AvatarURL = fmt.Sprintf("https://avatars.githubusercontent.com/u/%d", seed)
	stats.ProfileURL = "https://github.com/" + login
	stats.Followers = g.between(10, 500)
	stats.Following = g.between(5, 200)
	stats.PublicRepos = g.between(5, 40)
	stats.PublicGists = g.between(0, 15)
	stats.CreatedAt = daysBefore(g.between(365, 3650))
	stats.DataSource = domain.SourceSynthetic

	n := g.between(3, 8)
	if n > stats.PublicRepos {
		n = stats.PublicRepos
	}

	start := g.between(0, len(repoNames)-1)
	repos := make([]domain.Repository, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s-%d", repoNames[(start+i)%len(repoNames)], seed%1000)
		repos = append(repos, domain.Repository{
			Name:        name,
			Description: pick(g, repoDescriptions),
			URL:         fmt.Sprintf("https://github.com/%s/%s", login, name),
			Stars:       g.between(0, 150),
			Forks:       g.between(0, 40),
			Language:    pick(g, languages),
			UpdatedAt:   daysBefore(g.between(0, 365)),
		})
	}

	normalize.SummarizeRepos(stats, repos)
	return stats
}
