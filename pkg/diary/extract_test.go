package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mastodiary/pkg/mastodon"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "collapses separators",
			content:  "#Diary  Hello,,, world!!",
			expected: "Hello world",
		},
		{
			name:     "paragraph markup",
			content:  "<p>#Diary went for a walk</p>",
			expected: "went for a walk",
		},
		{
			name:     "decodes entities",
			content:  "<p>#Diary a &amp; b</p>",
			expected: "a & b",
		},
		{
			name:     "double escaped entities",
			content:  "<p>#Diary fish &amp;amp; chips</p>",
			expected: "fish & chips",
		},
		{
			name: "mastodon hashtag link",
			content: `<p><a href="https://mastodon.social/tags/Diary" class="mention hashtag" rel="tag">` +
				`#<span>Diary</span></a> rainy day, stayed in!</p>`,
			expected: "rainy day stayed in",
		},
		{
			name:     "repeated marker",
			content:  "#Diary#Diary twice",
			expected: "twice",
		},
		{
			name:     "text nodes across paragraphs",
			content:  "<p>#Diary first</p><p>second</p>",
			expected: "firstsecond",
		},
		{
			name:     "marker only",
			content:  "<p>#Diary !!!</p>",
			expected: "",
		},
		{
			name:     "normalises to NFC",
			content:  "#Diary cafe\u0301",
			expected: "caf\u00e9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := Extract(tt.content)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestExtractFilters(t *testing.T) {
	filtered := []string{
		"",
		"   ",
		"<p>Just a normal post</p>",
		"<p>Today: #Diary entry</p>",
		"<p> #Diary leading space</p>",
		"#diary lowercase",
		"<p>#Dia</p>",
	}

	for _, content := range filtered {
		t.Run(content, func(t *testing.T) {
			text, ok := Extract(content)
			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestFromStatuses(t *testing.T) {
	statuses := []mastodon.Status{
		{ID: "30", CreatedAt: "2024-01-16T09:00:00.000Z", Content: "<p>#Diary newest</p>"},
		{ID: "25", CreatedAt: "2024-01-15T20:00:00.000Z", Content: "<p>not a diary post</p>"},
		{ID: "20", CreatedAt: "2024-01-15T10:00:00.000Z", Content: "<p>#Diary older, and better!</p>"},
		{ID: "10"},
	}

	entries := FromStatuses(statuses)

	assert.Equal(t, []Entry{
		{PostID: "30", CreatedAt: "2024-01-16T09:00:00.000Z", Text: "newest"},
		{PostID: "20", CreatedAt: "2024-01-15T10:00:00.000Z", Text: "older and better"},
	}, entries)
}

func TestFromStatusesNone(t *testing.T) {
	assert.Empty(t, FromStatuses(nil))
	assert.Empty(t, FromStatuses([]mastodon.Status{{ID: "1", Content: "<p>hello</p>"}}))
}
