// Package mastodon provides a small read-only client for the Mastodon REST API.
//
// This package includes:
//   - ParseProfileURL, turning https://host/@user into a Profile
//   - Endpoint builders for account lookup and account statuses
//   - A Client that resolves accounts and walks a timeline with max_id pagination
//   - Models tolerant of string or numeric ids and of missing fields
//
// All failures are *errors.Error values from mastodiary/pkg/errors:
// ErrorTypeInvalidURL, ErrorTypeUserNotFound or ErrorTypeNetwork.
//
// Example usage:
//
//	profile, err := mastodon.ParseProfileURL("https://mastodon.social/@alice")
//	if err != nil {
//	    return err
//	}
//
//	client := mastodon.NewClient(profile.BaseURL(), 30*time.Second, nil)
//	account, err := client.LookupAccount(ctx, profile.Username)
//	if err != nil {
//	    return err
//	}
//
//	statuses, err := client.FetchAllStatuses(ctx, account.ID)
package mastodon
