// Package crisis detects messages that signal a user may be in danger and
// composes the alert a trusted contact receives.
package crisis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultKeywords are the phrases that gate the emergency path. Matching is
// case-insensitive substring matching, so spelling variants users actually
// type are listed as-is.
var DefaultKeywords = []string{
	"wanna die",
	"I have suidical thoughts",
	"to suicide",
	"suicidal",
	"can't do this anymore",
	"kill myself",
	"want to die",
	"end it all",
	"no reason to live",
	"I'm done",
}

// Detector matches text against a keyword list.
type Detector struct {
	keywords []string // lower-cased
}

// NewDetector builds a detector. With no keywords it uses DefaultKeywords.
func NewDetector(keywords ...string) *Detector {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	d := &Detector{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			d.keywords = append(d.keywords, kw)
		}
	}
	return d
}

// IsCrisis reports whether text contains any keyword.
func (d *Detector) IsCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Matches returns every keyword found in text, in list order.
func (d *Detector) Matches(text string) []string {
	lower := strings.ToLower(text)
	matched := []string{}
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Alert is an emergency notification about a user.
type Alert struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	PlayerID  uuid.UUID `json:"player_id" bson:"playerID"`
	Username  string    `json:"username" bson:"username"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// MapsURL links to the alert location.
func MapsURL(lat, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/?q=%v,%v", lat, lng)
}

// ComposeAlert builds the alert text sent to a user's emergency contact.
func ComposeAlert(playerID uuid.UUID, username string, lat, lng float64) Alert {
	return Alert{
		ID:        uuid.New(),
		PlayerID:  playerID,
		Username:  username,
		Latitude:  lat,
		Longitude: lng,
		Message:   fmt.Sprintf("EMERGENCY ALERT: %s may need immediate help. Location: %s", username, MapsURL(lat, lng)),
		CreatedAt: time.Now().UTC(),
	}
}
