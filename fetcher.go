package mensa

import "context"

// DomainLimiter limits the request rate per domain so that providers are
// not hammered when several flyers are downloaded at once.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	Wait(ctx context.Context, domain string) error
}

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML of a page.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// FetchBytes retrieves a binary resource, e.g. a PDF flyer.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
