package models

// HashtagStat represents how often one hashtag appears across secrets
// within the active time window
type HashtagStat struct {
	Tag        string  `json:"tag"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TrendingSecret pairs a secret with its engagement score
type TrendingSecret struct {
	Secret Secret  `json:"secret"`
	Score  float64 `json:"score"`
}

// Preferences holds the user-facing settings persisted for the app
type Preferences struct {
	DarkMode           bool `json:"dark_mode"`
	Autoplay           bool `json:"autoplay"`
	Captions           bool `json:"captions"`
	PushNotifications  bool `json:"push_notifications"`
	LikeNotifications  bool `json:"like_notifications"`
	ReplyNotifications bool `json:"reply_notifications"`
	WeeklyDigest       bool `json:"weekly_digest"`
}
