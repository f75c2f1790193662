package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client implements api.Fetcher for GitHub.
// Only handles GitHub API communication; shaping the data is the normalizer's job.
type Client struct {
	*api.BaseClient
}

// NewClient creates a new GitHub client.
// Uses dependency injection for HTTPClient.
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{BaseClient: api.NewBaseClient(domain.PlatformGitHub, config, httpClient)}
}

// Platform implements api.Fetcher.
func (c *Client) Platform() domain.Platform {
	return domain.PlatformGitHub
}

// Fetch retrieves the user profile and the most recently updated repositories.
// Both calls share one timeout budget; if either fails the whole fetch fails, so
// callers never see a profile without its repositories.
func (c *Client) Fetch(ctx context.Context, username string) (api.Payload, error) {
	ctx, cancel := c.WithTimeout(ctx)
	defer cancel()

	var payload Payload
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		u := fmt.Sprintf("%s/users/%s", c.BaseURL, url.PathEscape(username))
		return c.doRequest(gctx, u, &payload.User)
	})
	g.Go(func() error {
		u := fmt.Sprintf("%s/users/%s/repos?per_page=%d&page=1&sort=updated",
			c.BaseURL, url.PathEscape(username), api.DefaultPageSize)
		return c.doRequest(gctx, u, &payload.Repos)
	})

	if err := g.Wait(); err != nil {
		return nil, api.AsFailure(domain.PlatformGitHub, err)
	}

	if payload.User.Login == "" {
		return nil, api.NewMalformed(domain.PlatformGitHub, "profile for %q has no login", username)
	}
	if len(payload.Repos) > api.DefaultPageSize {
		payload.Repos = payload.Repos[:api.DefaultPageSize]
	}

	return &payload, nil
}

// doRequest performs a GET against the GitHub API.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return api.NewMalformed(domain.PlatformGitHub, "failed to create request: %w", err)
	}

	if c.HasToken() {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	return c.Do(ctx, req, result)
}

// Payload is the raw GitHub response pair.
type Payload struct {
	User  User
	Repos []Repository
}

// Platform implements api.Payload.
func (p *Payload) Platform() domain.Platform {
	return domain.PlatformGitHub
}

// GitHub API response types
type User struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	HTMLURL     string  `json:"html_url"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Company     *string `json:"company"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	PublicRepos int     `json:"public_repos"`
	PublicGists int     `json:"public_gists"`
	CreatedAt   string  `json:"created_at"`
}

type Repository struct {
	Name            string  `json:"name"`
	FullName        string  `json:"full_name"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	Language        *string `json:"language"`
	Fork            bool    `json:"fork"`
	UpdatedAt       string  `json:"updated_at"`
}
