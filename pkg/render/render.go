package render

import (
	"strings"
	"time"

	"mastodiary/pkg/diary"
	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/logger"
)

const (
	// Placeholder is replaced by the rendered entries
	Placeholder = "{{posts}}"

	DateLayout = "02/01/2006"
	TimeLayout = "03:04 PM"

	Separator   = "<hr>"
	EmptyNotice = "<p>No posts with content found.</p>"
)

// Renderer formats diary entries as HTML blocks in a display timezone
type Renderer struct {
	loc    *time.Location
	now    func() time.Time
	logger logger.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithClock sets the clock used for timestamps that cannot be converted
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a renderer for the given display timezone
func NewRenderer(loc *time.Location, log logger.Logger, opts ...Option) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.GetLogger()
	}

	r := &Renderer{
		loc:    loc,
		now:    time.Now,
		logger: log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the display timezone
func (r *Renderer) Location() *time.Location {
	return r.loc
}

// Blocks walks entries in order, emitting a date header whenever the
// formatted date changes and a separator between date groups.
func (r *Renderer) Blocks(entries []diary.Entry) []string {
	if len(entries) == 0 {
		return []string{EmptyNotice}
	}

	blocks := make([]string, 0, len(entries)*2)
	lastDate := ""
	for i, entry := range entries {
		t := r.LocalTime(entry.CreatedAt)
		date := t.Format(DateLayout)

		if i == 0 || date != lastDate {
			if i > 0 {
				blocks = append(blocks, Separator)
			}
			blocks = append(blocks, "<p><strong>"+date+"</strong></p>")
			lastDate = date
		}

		blocks = append(blocks, "<article><p class='post-time'>"+t.Format(TimeLayout)+"</p><p>"+entry.Text+"</p></article>")
	}
	return blocks
}

// Render returns the blocks for entries joined by newlines
func (r *Renderer) Render(entries []diary.Entry) string {
	return strings.Join(r.Blocks(entries), "\n")
}

// CheckTemplate reports an error when template has no placeholder
func CheckTemplate(template string) error {
	if !strings.Contains(template, Placeholder) {
		return errs.New(errs.ErrorTypeTemplateRead, "template does not contain the "+Placeholder+" placeholder")
	}
	return nil
}

// Document substitutes body for the first placeholder in template.
// All other template bytes are kept as they are.
func Document(template, body string) (string, error) {
	if err := CheckTemplate(template); err != nil {
		return "", err
	}
	i := strings.Index(template, Placeholder)
	return template[:i] + body + template[i+len(Placeholder):], nil
}
