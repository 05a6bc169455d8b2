// Package fetch provides one mensa.MenuSource per menu provider. A source
// discovers the currently published menu documents on the provider's page,
// downloads and converts them, and feeds them through the matching parser.
package fetch

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mensa-dev/mensa"
)

// defaultConcurrency bounds how many flyers are processed at once.
const defaultConcurrency = 4

// Ensure DomainLimiter implements mensa.DomainLimiter at compile time.
var _ mensa.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so concurrent requests to different
// providers do not slow each other down.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests
// per second limit. Each domain gets a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// weekJob is one discovered weekly flyer awaiting download and parsing.
type weekJob struct {
	url  string
	week int
	year int
}

// weekDeps carries the collaborators shared by the PDF-based sources.
type weekDeps struct {
	source  string
	fetcher mensa.Fetcher
	convert func(ctx context.Context, pdf []byte) (string, error)
	parser  mensa.WeekParser
	limiter mensa.DomainLimiter
	logger  *slog.Logger
}

// collectWeeks downloads, converts and parses the given flyers, bounded by
// defaultConcurrency, and merges the per-week results into one MenuMap.
// A week that fails any stage is logged and skipped; only cancellation
// aborts the whole collection.
func collectWeeks(ctx context.Context, deps weekDeps, jobs []weekJob) (mensa.MenuMap, error) {
	results := make([]mensa.MenuMap, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if deps.limiter != nil {
				if err := deps.limiter.Wait(ctx, domainOf(job.url)); err != nil {
					return err
				}
			}

			pdf, err := deps.fetcher.FetchBytes(ctx, job.url)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				deps.logger.Warn("skipping week: download failed",
					"source", deps.source, "url", job.url, "err", err)
				return nil
			}

			text, err := deps.convert(ctx, pdf)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				deps.logger.Warn("skipping week: conversion failed",
					"source", deps.source, "url", job.url, "err", err)
				return nil
			}

			menus, err := deps.parser.ParseWeek(text, job.year, job.week)
			if err != nil {
				deps.logger.Warn("skipping week: parsing failed",
					"source", deps.source, "week", job.week, "year", job.year, "err", err)
				return nil
			}
			results[i] = menus
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Distinct weeks cover distinct dates, so merge order only matters for
	// a misbehaving provider; last write wins in job order.
	merged := make(mensa.MenuMap)
	for _, menus := range results {
		merged.Merge(menus)
	}
	return merged, nil
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// resolveHref resolves a possibly relative link against the page URL.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
