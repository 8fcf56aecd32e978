// Package trending computes hashtag statistics, engagement scores and
// search results over an in-memory collection of secrets. All functions
// are pure: inputs are passed in, outputs are returned, and the current
// time comes from an injectable clock.
package trending

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

// Engagement score tuning constants.
// score = likes / (ageHours + scoreAgeOffset)^scoreDecayExponent
// The offset avoids division blow-up for brand-new secrets; the exponent
// controls how fast older secrets decay out of the ranking.
const (
	scoreAgeOffset     = 2.0
	scoreDecayExponent = 1.5
)

// hashtagPattern matches a '#' immediately followed by one or more word
// characters. Tags are lowercased for both counting and display.
var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// Aggregator ranks secrets and hashtags over a selectable time window
type Aggregator struct {
	// now is the clock used for window filtering and age computation
	now func() time.Time
}

// NewAggregator creates an aggregator using the host clock
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// NewAggregatorWithClock creates an aggregator with an injected clock for
// deterministic testing
func NewAggregatorWithClock(now func() time.Time) *Aggregator {
	return &Aggregator{now: now}
}

// FilterByWindow returns the secrets created within the last windowHours
// hours, inclusive of the lower bound. A non-positive window yields an
// empty result rather than an error.
func (a *Aggregator) FilterByWindow(secrets []models.Secret, windowHours int) []models.Secret {
	if windowHours <= 0 {
		return nil
	}

	now := a.now()
	cutoff := now.Add(-time.Duration(windowHours) * time.Hour)

	filtered := make([]models.Secret, 0, len(secrets))
	for _, s := range secrets {
		if !s.CreatedAt.Before(cutoff) && !s.CreatedAt.After(now) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// ComputeHashtagStats counts hashtag mentions across the given secrets.
// A tag appearing several times within one secret counts once, so a single
// spammy secret cannot dominate the ranking. Percentages are relative to
// the total number of tag mentions and rounded to one decimal. The result
// is ordered by count descending, ties broken by tag ascending.
func (a *Aggregator) ComputeHashtagStats(secrets []models.Secret) []models.HashtagStat {
	counts := make(map[string]int)

	for _, s := range secrets {
		for tag := range extractHashtags(s) {
			counts[tag]++
		}
	}

	if len(counts) == 0 {
		return []models.HashtagStat{}
	}

	totalMentions := 0
	for _, count := range counts {
		totalMentions += count
	}

	stats := make([]models.HashtagStat, 0, len(counts))
	for tag, count := range counts {
		pct := float64(count) / float64(totalMentions) * 100
		stats = append(stats, models.HashtagStat{
			Tag:        tag,
			Count:      count,
			Percentage: math.Round(pct*10) / 10,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Tag < stats[j].Tag
	})

	return stats
}

// extractHashtags returns the set of distinct lowercased hashtags found in
// a secret's body and transcription
func extractHashtags(s models.Secret) map[string]struct{} {
	tags := make(map[string]struct{})

	for _, text := range []string{s.Body, s.Transcription} {
		for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
			tags[strings.ToLower(match[1])] = struct{}{}
		}
	}

	return tags
}

// ComputeEngagementScore scores a secret by likes discounted by age:
// score = likes / (ageHours + 2)^1.5. Ages are clamped to zero, so the
// score is always finite and non-negative, increases with likes and
// decreases with age.
func (a *Aggregator) ComputeEngagementScore(secret models.Secret) float64 {
	ageHours := a.now().Sub(secret.CreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	return float64(secret.Likes) / math.Pow(ageHours+scoreAgeOffset, scoreDecayExponent)
}

// ComputeTrendingSecrets filters secrets by the time window, scores each
// one and returns them ordered by score descending, newer first on ties.
// A limit of zero or less means unbounded.
func (a *Aggregator) ComputeTrendingSecrets(secrets []models.Secret, windowHours, limit int) []models.TrendingSecret {
	windowed := a.FilterByWindow(secrets, windowHours)

	ranked := make([]models.TrendingSecret, 0, len(windowed))
	for _, s := range windowed {
		ranked = append(ranked, models.TrendingSecret{
			Secret: s,
			Score:  a.ComputeEngagementScore(s),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Secret.CreatedAt.After(ranked[j].Secret.CreatedAt)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// SearchByHashtag returns the secrets whose body or transcription contains
// the query, case-insensitively. The query is trimmed first; an empty query
// matches the "clear search" affordance and returns an empty result, not
// the full collection.
func (a *Aggregator) SearchByHashtag(secrets []models.Secret, query string) []models.Secret {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Secret{}
	}

	matched := make([]models.Secret, 0)
	for _, s := range secrets {
		if strings.Contains(strings.ToLower(s.Body), query) ||
			strings.Contains(strings.ToLower(s.Transcription), query) {
			matched = append(matched, s)
		}
	}

	return matched
}
