package diary

import (
	"mastodiary/pkg/mastodon"
)

// Entry is a post that passed the diary filter
type Entry struct {
	PostID mastodon.ID
	// CreatedAt is the timestamp exactly as sent by the server
	CreatedAt string
	Text      string
}

// FromStatuses keeps the diary posts of a timeline, preserving its order
func FromStatuses(statuses []mastodon.Status) []Entry {
	var entries []Entry
	for _, status := range statuses {
		text, ok := Extract(status.Content)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			PostID:    status.ID,
			CreatedAt: status.CreatedAt,
			Text:      text,
		})
	}
	return entries
}
