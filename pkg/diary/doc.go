// Package diary turns Mastodon statuses into diary entries.
//
// A status is a diary entry when the plain text of its HTML content starts
// with the #Diary hashtag. The hashtag is removed, runs of spaces, commas
// and exclamation marks become one space, and HTML entities are decoded.
package diary
