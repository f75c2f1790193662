package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/domain"
)

type unknownPayload struct{}

func (unknownPayload) Platform() domain.Platform { return "myspace" }

func TestNormalize_Dispatch(t *testing.T) {
	n := New()

	gh, err := n.Normalize(&github.Payload{User: github.User{Login: "u"}})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformGitHub, gh.StatsPlatform())

	lc, err := n.Normalize(&leetcode.Payload{MatchedUser: &leetcode.MatchedUser{Username: "u"}})
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformLeetCode, lc.StatsPlatform())
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload api.Payload
	}{
		{name: "nil", payload: nil},
		{name: "unknown type", payload: unknownPayload{}},
		{name: "nil github", payload: (*github.Payload)(nil)},
		{name: "leetcode without user", payload: &leetcode.Payload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			stats, err := New().Normalize(tt.payload)

			// Assert
			assert.Nil(t, stats)
			var f *api.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, api.FailureMalformed, f.Kind)
		})
	}
}
