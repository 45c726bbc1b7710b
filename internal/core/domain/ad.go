package domain

import (
	"encoding/json"
	"time"
)

// Page identifies a site section an ad can target. The special PageAll
// value is a wildcard stored on ads only; requests always name a
// concrete page.
type Page string

const (
	PageHomepage Page = "homepage"
	PageEvents   Page = "events"
	PageVenues   Page = "venues"
	PageMovies   Page = "movies"
	PageArtists  Page = "artists"
	PageAll      Page = "all"
)

// ParsePage maps a request value to a known page. Unknown or empty
// values fall back to the homepage so that a stale link never breaks
// a public, cacheable read.
func ParsePage(s string) Page {
	switch Page(s) {
	case PageHomepage, PageEvents, PageVenues, PageMovies, PageArtists:
		return Page(s)
	default:
		return PageHomepage
	}
}

// Placement is a named slot type within a page.
type Placement string

const (
	PlacementBanner Placement = "banner"
	PlacementSlider Placement = "slider"
)

// ParsePlacement returns the placement when recognised, or the empty
// string which selection treats as "any placement".
func ParsePlacement(s string) Placement {
	switch Placement(s) {
	case PlacementBanner, PlacementSlider:
		return Placement(s)
	default:
		return ""
	}
}

// Status of an advertisement. Only active ads are ever served.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Ad represents a single advertisement campaign/creative.
type Ad struct {
	ID              int64
	Title           string
	Subtitle        string
	CTAText         string
	ImageURL        string
	ImageSettings   json.RawMessage // opaque styling payload, passed through to the client
	TargetURL       string
	AdvertiserName  string
	SlotPosition    int
	TargetPage      Page
	Placement       Placement
	Status          Status
	StartDate       *time.Time
	EndDate         *time.Time
	ImpressionCount int64
	ClickCount      int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EligibleAt reports whether the ad may be displayed at the given
// moment: active status and inside the optional [StartDate, EndDate]
// window, bounds inclusive.
func (a *Ad) EligibleAt(now time.Time) bool {
	if a.Status != StatusActive {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}

// RelevantTo reports whether the ad targets the requested page, either
// directly or via the "all" wildcard.
func (a *Ad) RelevantTo(page Page) bool {
	return a.TargetPage == page || a.TargetPage == PageAll
}

// MatchesPlacement reports whether the ad fits the requested placement.
// An empty placement means the caller accepts any.
func (a *Ad) MatchesPlacement(p Placement) bool {
	return p == "" || a.Placement == p
}
