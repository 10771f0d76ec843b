// Package social simulates posting to Facebook, Instagram and Twitter
// with per-platform engagement modeling and comment sentiment.
package social

import (
	"time"
)

// Platform is a supported social network.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
)

// Platforms returns every supported platform in posting order.
func Platforms() []Platform {
	return []Platform{PlatformFacebook, PlatformInstagram, PlatformTwitter}
}

// Post is a published social media post with its engagement numbers.
type Post struct {
	ID             string    `json:"id"`
	CampaignID     string    `json:"campaign_id"`
	Platform       string    `json:"platform"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	Hashtags       []string  `json:"hashtags"`
	PostedAt       time.Time `json:"posted_at"`
	Impressions    int       `json:"impressions"`
	Likes          int       `json:"likes"`
	Comments       int       `json:"comments"`
	Shares         int       `json:"shares"`
	Clicks         int       `json:"clicks"`
	EngagementRate float64   `json:"engagement_rate"`
}

// Comment is a simulated audience comment on a post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Sentiment  string    `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
}

var positiveComments = []string{
	"Love this!",
	"Great deal! Thanks for sharing!",
	"Just ordered mine!",
	"This is amazing!",
	"Can't wait to visit!",
	"Awesome! When does this start?",
	"Perfect timing! Just what I needed!",
	"Your store is the best!",
	"This looks great!",
	"Definitely checking this out!",
}

var neutralComments = []string{
	"What are the store hours?",
	"Is this available online?",
	"Do you ship?",
	"More info please?",
	"Interesting...",
	"How long is this offer valid?",
	"What colors do you have?",
	"Is this still available?",
	"Where is your location?",
	"Can I use this with other offers?",
}

var negativeComments = []string{
	"Wish the prices were better",
	"Out of stock again?",
	"Shipping takes too long",
	"Had a bad experience last time",
	"Too expensive",
	"Not interested",
	"Meh...",
	"Already have this",
	"Seen better elsewhere",
}

var commentAuthors = []string{
	"Sarah Johnson", "Mike Williams", "Emily Davis", "James Brown", "Jessica Miller",
	"David Wilson", "Ashley Taylor", "Chris Anderson", "Amanda Thomas", "Ryan Martinez",
	"Jennifer Lopez", "Kevin Garcia", "Laura Rodriguez", "Brian Lee", "Nicole White",
}
