package scraper

import (
	"context"

	"mastodiary/pkg/mastodon"
)

// MastodonClient defines the Mastodon API operations a run needs
type MastodonClient interface {
	LookupAccount(ctx context.Context, username string) (*mastodon.Account, error)
	FetchAllStatuses(ctx context.Context, accountID mastodon.ID) ([]mastodon.Status, error)
}

// ClientFactory builds a client for the API root of a profile's server
type ClientFactory func(baseURL string) MastodonClient
