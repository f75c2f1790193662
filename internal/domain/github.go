package domain

// GitHubStats is the normalized GitHub profile summary.
type GitHubStats struct {
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	AvatarURL    string          `json:"avatarUrl"`
	Bio          string          `json:"bio"`
	ProfileURL   string          `json:"profileUrl"`
	Location     string          `json:"location"`
	Company      string          `json:"company"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	PublicRepos  int             `json:"publicRepos"`
	PublicGists  int             `json:"publicGists"`
	CreatedAt    string          `json:"createdAt"`
	TotalStars   int             `json:"totalStars"`
	TotalForks   int             `json:"totalForks"`
	TopLanguages []LanguageCount `json:"topLanguages"`
	TopRepos     []Repository    `json:"topRepos"`
	DataSource   DataSource      `json:"dataSource"`
}

// LanguageCount is one bucket of the language histogram.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Repository is a repository summary as shown on the dashboard.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"` // empty when upstream reports none
	UpdatedAt   string `json:"updatedAt"`
}

// NewGitHubStats returns a record with every list initialized.
func NewGitHubStats() *GitHubStats {
	return &GitHubStats{
		TopLanguages: []LanguageCount{},
		TopRepos:     []Repository{},
	}
}

func (s *GitHubStats) StatsPlatform() Platform { return PlatformGitHub }
func (s *GitHubStats) Source() DataSource      { return s.DataSource }
