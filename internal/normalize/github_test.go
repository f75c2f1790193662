package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

func strPtr(s string) *string { return &s }

func repo(name string, stars, forks int, language *string) github.Repository {
	return github.Repository{
		Name:            name,
		HTMLURL:         "https://github.com/u/" + name,
		StargazersCount: stars,
		ForksCount:      forks,
		Language:        language,
	}
}

func TestGitHub_Totals(t *testing.T) {
	// Arrange
	p := &github.Payload{
		User: github.User{Login: "u"},
		Repos: []github.Repository{
			repo("a", 5, 1, strPtr("Go")),
			repo("b", 0, 0, nil),
			repo("c", 12, 3, strPtr("Go")),
		},
	}

	// Act
	stats := GitHub(p)

	// Assert
	assert.Equal(t, 17, stats.TotalStars)
	assert.Equal(t, 4, stats.TotalForks)
	assert.Equal(t, domain.SourceLive, stats.DataSource)
}

func TestGitHub_DefaultsMissingFields(t *testing.T) {
	// Arrange
	p := &github.Payload{User: github.User{Login: "u"}}

	// Act
	stats := GitHub(p)

	// Assert
	assert.Equal(t, "", stats.Name)
	assert.Equal(t, "", stats.Bio)
	assert.Equal(t, "", stats.Company)
	assert.NotNil(t, stats.TopLanguages)
	assert.NotNil(t, stats.TopRepos)
	assert.Empty(t, stats.TopRepos)
	assert.Zero(t, stats.TotalStars)
}

func TestGitHub_TopLanguages(t *testing.T) {
	// Arrange
	p := &github.Payload{
		User: github.User{Login: "u"},
		Repos: []github.Repository{
			repo("1", 0, 0, strPtr("Rust")),
			repo("2", 0, 0, strPtr("Go")),
			repo("3", 0, 0, nil),
			repo("4", 0, 0, strPtr("Go")),
			repo("5", 0, 0, strPtr("C")),
			repo("6", 0, 0, strPtr("Python")),
			repo("7", 0, 0, strPtr("Java")),
			repo("8", 0, 0, strPtr("Zig")),
		},
	}

	// Act
	stats := GitHub(p)

	// Assert
	require.Len(t, stats.TopLanguages, TopN)
	assert.Equal(t, []domain.LanguageCount{
		{Language: "Go", Count: 2},
		{Language: "Rust", Count: 1},
		{Language: "C", Count: 1},
		{Language: "Python", Count: 1},
		{Language: "Java", Count: 1},
	}, stats.TopLanguages)
}

func TestGitHub_TopReposKeepUpstreamOrderOnTies(t *testing.T) {
	// Arrange
	p := &github.Payload{
		User: github.User{Login: "u"},
		Repos: []github.Repository{
			repo("first", 3, 0, nil),
			repo("big", 10, 0, nil),
			repo("second", 3, 0, nil),
			repo("third", 3, 0, nil),
			repo("fourth", 3, 0, nil),
			repo("fifth", 3, 0, nil),
		},
	}

	// Act
	stats := GitHub(p)

	// Assert
	names := make([]string, 0, len(stats.TopRepos))
	for _, r := range stats.TopRepos {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"big", "first", "second", "third", "fourth"}, names)
	assert.Equal(t, "", stats.TopRepos[0].Language)
	assert.Equal(t, "https://github.com/u/big", stats.TopRepos[0].URL)
}
