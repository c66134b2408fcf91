// Package schema turns decoded request bodies into validated models. Every
// parser reports all failing fields at once as an errs validation error.
package schema

import (
	"regexp"

	"github.com/eventpilot/backend/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func ParseQuoteRequest(raw map[string]any) (models.QuoteRequest, error) {
	r := newReader(raw, false)
	q := quoteRules(r)
	return q, r.err()
}

func ParseContactMessage(raw map[string]any) (models.ContactMessage, error) {
	r := newReader(raw, false)
	c := contactRules(r)
	return c, r.err()
}

func ParseBlogPost(raw map[string]any) (models.BlogPost, error) {
	r := newReader(raw, false)
	p := blogPostRules(r)
	return p, r.err()
}

func ParseBlogPostPatch(raw map[string]any) (Patch, error) {
	r := newReader(raw, true)
	blogPostRules(r)
	return r.patch, r.err()
}

func ParseGalleryItem(raw map[string]any) (models.GalleryItem, error) {
	r := newReader(raw, false)
	g := galleryItemRules(r)
	return g, r.err()
}

func ParseVenue(raw map[string]any) (models.Venue, error) {
	r := newReader(raw, false)
	v := venueRules(r)
	return v, r.err()
}

func ParseVenuePatch(raw map[string]any) (Patch, error) {
	r := newReader(raw, true)
	venueRules(r)
	return r.patch, r.err()
}

func ParseService(raw map[string]any) (models.Service, error) {
	r := newReader(raw, false)
	s := serviceRules(r)
	return s, r.err()
}

func ParseServicePatch(raw map[string]any) (Patch, error) {
	r := newReader(raw, true)
	serviceRules(r)
	return r.patch, r.err()
}

// QuoteStatusUpdate is the admin transition of a quote request.
type QuoteStatusUpdate struct {
	Status        models.QuoteStatus
	EstimatedCost *models.Money
}

func ParseQuoteStatusUpdate(raw map[string]any) (QuoteStatusUpdate, Patch, error) {
	r := newReader(raw, true)
	status := r.enum("status", "status", quoteStatuses, "")
	if _, ok := r.lookup("status"); !ok {
		r.fail("status", "Required")
	}
	cost := r.money("estimatedCost", "estimated_cost", false, true)
	return QuoteStatusUpdate{Status: models.QuoteStatus(status), EstimatedCost: cost}, r.patch, r.err()
}

func ParseContactStatusUpdate(raw map[string]any) (models.ContactStatus, error) {
	r := newReader(raw, false)
	status := r.enum("status", "status", contactStatuses, "")
	return models.ContactStatus(status), r.err()
}

// Credentials is a login attempt.
type Credentials struct {
	Username string
	Password string
}

func ParseLogin(raw map[string]any) (Credentials, error) {
	r := newReader(raw, false)
	c := Credentials{
		Username: r.requiredString("username", ""),
		Password: r.secret("password"),
	}
	return c, r.err()
}
