package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

// DefaultBaseURL is the public LeetCode GraphQL endpoint.
const DefaultBaseURL = "https://leetcode.com/graphql"

// RecentSubmissionsLimit is the number of recent submissions requested.
const RecentSubmissionsLimit = 15

// profileQuery fetches everything the dashboard shows in one round trip.
// username is its only variable.
var profileQuery = fmt.Sprintf(`query userProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile { realName userAvatar ranking reputation starRating }
    submitStats { acSubmissionNum { difficulty count } }
    badges { id name displayName icon creationDate }
    tagProblemCounts {
      advanced { tagName tagSlug problemsSolved }
      intermediate { tagName tagSlug problemsSolved }
      fundamental { tagName tagSlug problemsSolved }
    }
    problemsSolvedBeatsStats { difficulty percentage }
  }
  userContestRanking(username: $username) {
    attendedContestsCount rating globalRanking totalParticipants topPercentage
  }
  recentSubmissionList(username: $username, limit: %d) {
    title titleSlug timestamp statusDisplay lang
  }
}`, RecentSubmissionsLimit)

// Client implements api.Fetcher for LeetCode.
type Client struct {
	*api.BaseClient
}

// NewClient creates a new LeetCode client.
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{BaseClient: api.NewBaseClient(domain.PlatformLeetCode, config, httpClient)}
}

// Platform implements api.Fetcher.
func (c *Client) Platform() domain.Platform {
	return domain.PlatformLeetCode
}

// Fetch runs the profile query for username.
func (c *Client) Fetch(ctx context.Context, username string) (api.Payload, error) {
	ctx, cancel := c.WithTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(graphQLRequest{
		Query:     profileQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return nil, api.NewMalformed(domain.PlatformLeetCode, "failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewMalformed(domain.PlatformLeetCode, "failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")
	if c.HasToken() {
		req.Header.Set("Cookie", "LEETCODE_SESSION="+c.Token)
	}

	var resp graphQLResponse
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, api.NewMalformed(domain.PlatformLeetCode, "graphql error: %s", resp.Errors[0].Message)
	}
	if resp.Data.MatchedUser == nil {
		return nil, api.NewMalformed(domain.PlatformLeetCode, "no matched user for %q", username)
	}

	return &resp.Data, nil
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphQLResponse struct {
	Data   Payload `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Payload is the GraphQL data object.
type Payload struct {
	MatchedUser          *MatchedUser       `json:"matchedUser"`
	UserContestRanking   *ContestRanking    `json:"userContestRanking"`
	RecentSubmissionList []RecentSubmission `json:"recentSubmissionList"`
}

// Platform implements api.Payload.
func (p *Payload) Platform() domain.Platform {
	return domain.PlatformLeetCode
}

// LeetCode API response types
type MatchedUser struct {
	Username    string   `json:"username"`
	Profile     *Profile `json:"profile"`
	SubmitStats *struct {
		ACSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
	} `json:"submitStats"`
	Badges                   []Badge           `json:"badges"`
	TagProblemCounts         *TagProblemCounts `json:"tagProblemCounts"`
	ProblemsSolvedBeatsStats []BeatsStat       `json:"problemsSolvedBeatsStats"`
}

type Profile struct {
	RealName   *string  `json:"realName"`
	UserAvatar *string  `json:"userAvatar"`
	Ranking    *int     `json:"ranking"`
	Reputation *int     `json:"reputation"`
	StarRating *float64 `json:"starRating"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type Badge struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DisplayName  string  `json:"displayName"`
	Icon         string  `json:"icon"`
	CreationDate *string `json:"creationDate"`
}

type TagProblemCounts struct {
	Advanced     []TagCount `json:"advanced"`
	Intermediate []TagCount `json:"intermediate"`
	Fundamental  []TagCount `json:"fundamental"`
}

type TagCount struct {
	TagName        string `json:"tagName"`
	TagSlug        string `json:"tagSlug"`
	ProblemsSolved int    `json:"problemsSolved"`
}

type BeatsStat struct {
	Difficulty string   `json:"difficulty"`
	Percentage *float64 `json:"percentage"`
}

type ContestRanking struct {
	AttendedContestsCount int      `json:"attendedContestsCount"`
	Rating                float64  `json:"rating"`
	GlobalRanking         int      `json:"globalRanking"`
	TotalParticipants     int      `json:"totalParticipants"`
	TopPercentage         *float64 `json:"topPercentage"`
}

type RecentSubmission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	Timestamp     string `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}
