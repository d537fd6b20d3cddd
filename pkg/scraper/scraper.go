package scraper

import (
	"context"
	"time"

	"mastodiary/pkg/config"
	"mastodiary/pkg/diary"
	"mastodiary/pkg/logger"
	"mastodiary/pkg/mastodon"
	"mastodiary/pkg/render"
	"mastodiary/pkg/storage"
)

// Scraper runs one diary export: resolve, fetch, extract, render, write
type Scraper struct {
	config    *config.Config
	newClient ClientFactory
	logger    logger.Logger
	now       func() time.Time
}

// Result summarises a successful run
type Result struct {
	Profile    mastodon.Profile
	AccountID  mastodon.ID
	Statuses   int
	Entries    int
	OutputFile string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithClient uses client for every server instead of an HTTP client
func WithClient(client MastodonClient) Option {
	return func(s *Scraper) {
		s.newClient = func(string) MastodonClient { return client }
	}
}

// WithClientFactory sets how the Mastodon client is built
func WithClientFactory(factory ClientFactory) Option {
	return func(s *Scraper) {
		s.newClient = factory
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(s *Scraper) {
		s.logger = log
	}
}

// WithClock sets the clock used for timestamps that cannot be converted
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) {
		s.now = now
	}
}

// New creates a new Scraper instance
func New(cfg *config.Config, opts ...Option) *Scraper {
	s := &Scraper{
		config: cfg,
		logger: logger.GetLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newClient == nil {
		s.newClient = s.httpClient
	}
	return s
}

// httpClient builds the default REST client from the HTTP settings
func (s *Scraper) httpClient(baseURL string) MastodonClient {
	client := mastodon.NewClient(baseURL, s.config.HTTP.Timeout, s.logger)
	if s.config.HTTP.UserAgent != "" {
		client.SetHeader("User-Agent", s.config.HTTP.UserAgent)
	}
	return client
}

// Run performs the export. Local inputs (URL, timezone, template) are checked
// before any request is made. Nothing is written unless every step succeeds.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	profile, err := mastodon.ParseProfileURL(s.config.MastodonURL)
	if err != nil {
		return nil, err
	}

	loc, err := render.LoadLocation(s.config.Timezone)
	if err != nil {
		return nil, err
	}

	template, err := storage.ReadTemplate(s.config.TemplateFile)
	if err != nil {
		return nil, err
	}
	if err := render.CheckTemplate(template); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"host":     profile.Host,
		"username": profile.Username,
	})

	baseURL := s.config.HTTP.BaseURL
	if baseURL == "" {
		baseURL = profile.BaseURL()
	}
	client := s.newClient(baseURL)

	account, err := client.LookupAccount(ctx, profile.Username)
	if err != nil {
		return nil, err
	}
	log.WithField("account_id", string(account.ID)).Info("resolved account")

	statuses, err := client.FetchAllStatuses(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	entries := diary.FromStatuses(statuses)
	log.InfoWithFields("extracted diary entries", map[string]interface{}{
		"statuses": len(statuses),
		"entries":  len(entries),
	})

	renderer := render.NewRenderer(loc, log, render.WithClock(s.now))
	body := renderer.Render(entries)
	log.WithField("timezone", renderer.Location().String()).Debug("rendered diary entries")

	page, err := render.Document(template, body)
	if err != nil {
		return nil, err
	}

	if err := storage.WriteFileAtomic(s.config.OutputFile, []byte(page)); err != nil {
		return nil, err
	}
	log.WithField("output_file", s.config.OutputFile).Info("wrote diary page")

	return &Result{
		Profile:    profile,
		AccountID:  account.ID,
		Statuses:   len(statuses),
		Entries:    len(entries),
		OutputFile: s.config.OutputFile,
	}, nil
}
