// Package scraper ties the export pipeline together.
//
// A run is strictly sequential:
//
//  1. parse the profile URL
//  2. load the display timezone and the template
//  3. look up the account and fetch its whole timeline
//  4. keep the #Diary posts and render them
//  5. write the page atomically
//
// The first failing step ends the run with a typed error from
// mastodiary/pkg/errors. No output is written in that case.
//
// Usage:
//
//	cfg, err := config.Resolve("config.json", config.Flags{})
//	if err != nil {
//	    return err
//	}
//
//	result, err := scraper.New(cfg).Run(ctx)
package scraper
