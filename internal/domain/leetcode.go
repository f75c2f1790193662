package domain

// LeetCodeStats is the normalized LeetCode profile summary.
type LeetCodeStats struct {
	Username          string          `json:"username"`
	RealName          string          `json:"realName"`
	Avatar            string          `json:"avatar"`
	Ranking           int             `json:"ranking"`
	Reputation        int             `json:"reputation"`
	StarRating        float64         `json:"starRating"`
	TotalSolved       int             `json:"totalSolved"`
	EasySolved        int             `json:"easySolved"`
	MediumSolved      int             `json:"mediumSolved"`
	HardSolved        int             `json:"hardSolved"`
	Badges            []Badge         `json:"badges"`
	TopTags           []TagCount      `json:"topTags"`
	BeatsStats        []BeatsStat     `json:"beatsStats"`
	Contest           *ContestRanking `json:"contest"` // null when the user never competed
	RecentSubmissions []Submission    `json:"recentSubmissions"`
	DataSource        DataSource      `json:"dataSource"`
}

// Badge is an achievement badge.
type Badge struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Icon         string `json:"icon"`
	CreationDate string `json:"creationDate"`
}

// Tag tiers as reported by LeetCode.
const (
	TierAdvanced     = "advanced"
	TierIntermediate = "intermediate"
	TierFundamental  = "fundamental"
)

// TagCount is the number of solved problems for one topic tag.
type TagCount struct {
	TagName        string `json:"tagName"`
	TagSlug        string `json:"tagSlug"`
	ProblemsSolved int    `json:"problemsSolved"`
	Tier           string `json:"tier"`
}

// BeatsStat is the share of users beaten at one difficulty.
type BeatsStat struct {
	Difficulty string  `json:"difficulty"`
	Percentage float64 `json:"percentage"`
}

// ContestRanking summarizes contest participation.
type ContestRanking struct {
	AttendedContestsCount int     `json:"attendedContestsCount"`
	Rating                float64 `json:"rating"`
	GlobalRanking         int     `json:"globalRanking"`
	TotalParticipants     int     `json:"totalParticipants"`
	TopPercentage         float64 `json:"topPercentage"`
}

// Submission is one entry of the recent submissions list.
type Submission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	Timestamp     string `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}

// NewLeetCodeStats returns a record with every list initialized.
func NewLeetCodeStats() *LeetCodeStats {
	return &LeetCodeStats{
		Badges:            []Badge{},
		TopTags:           []TagCount{},
		BeatsStats:        []BeatsStat{},
		RecentSubmissions: []Submission{},
	}
}

func (s *LeetCodeStats) StatsPlatform() Platform { return PlatformLeetCode }
func (s *LeetCodeStats) Source() DataSource      { return s.DataSource }
