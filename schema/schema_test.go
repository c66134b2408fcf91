package schema

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/eventpilot/backend/errs"
	"github.com/eventpilot/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	require.NoError(t, dec.Decode(&raw))
	return raw
}

func issueFields(t *testing.T, err error) []string {
	t.Helper()
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	require.True(t, errs.IsValidationError(err))
	fields := make([]string, 0, len(apiErr.Issues))
	for _, issue := range apiErr.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

func TestParseContactMessage(t *testing.T) {
	msg, err := ParseContactMessage(decode(t, `{
		"id": "client-chosen",
		"firstName": "Ada",
		"lastName": "L",
		"email": "a@b.co",
		"subject": "Hi",
		"message": "Hello",
		"createdAt": "2001-01-01",
		"unknown": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Ada", msg.FirstName)
	assert.Equal(t, "a@b.co", msg.Email)
	assert.Nil(t, msg.Phone)
	assert.Equal(t, models.ContactStatusUnread, msg.Status)
	assert.Zero(t, msg.ID)
	assert.True(t, msg.CreatedAt.IsZero())
}

func TestParseContactMessageReportsEveryField(t *testing.T) {
	_, err := ParseContactMessage(decode(t, `{"firstName": "", "email": "not-an-email", "subject": 7}`))

	fields := issueFields(t, err)
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email", "subject", "message"}, fields)
}

func TestParseQuoteRequest(t *testing.T) {
	q, err := ParseQuoteRequest(decode(t, `{
		"eventType": "wedding",
		"guestCount": "51-100",
		"eventDate": "2025-06-14",
		"budget": "10k-25k",
		"services": {"planning": true, "lighting": true},
		"name": "Sam",
		"email": "sam@example.com",
		"phone": "555-0100",
		"status": "accepted",
		"estimatedCost": 100
	}`))
	require.NoError(t, err)

	assert.Equal(t, models.QuoteStatusPending, q.Status)
	assert.Nil(t, q.EstimatedCost)
	assert.Equal(t, "email", q.ContactMethod)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), q.EventDate)
	services := q.Services.Data()
	assert.True(t, services.Planning)
	assert.True(t, services.Lighting)
	assert.False(t, services.Academic)
}

func TestParseQuoteRequestNestedServices(t *testing.T) {
	_, err := ParseQuoteRequest(decode(t, `{
		"eventType": "gala", "guestCount": "10", "eventDate": "soon", "budget": "x",
		"services": {"planning": "yes"},
		"name": "n", "email": "e@x.io", "phone": "1"
	}`))

	assert.ElementsMatch(t, []string{"eventDate", "services.planning"}, issueFields(t, err))
}

func TestParseVenueBounds(t *testing.T) {
	base := `"name":"Hall","address":"1 Main","city":"Austin","state":"TX","zipCode":"78701"`

	tests := []struct {
		name   string
		extra  string
		fields []string
	}{
		{name: "valid with string price", extra: `"capacity":120,"pricePerDay":"1500.00","rating":4.5`},
		{name: "zero capacity", extra: `"capacity":0,"pricePerDay":10`, fields: []string{"capacity"}},
		{name: "fractional capacity", extra: `"capacity":1.5,"pricePerDay":10`, fields: []string{"capacity"}},
		{name: "negative price", extra: `"capacity":10,"pricePerDay":-1`, fields: []string{"pricePerDay"}},
		{name: "price with three decimals", extra: `"capacity":10,"pricePerDay":10.005`, fields: []string{"pricePerDay"}},
		{name: "string price with three decimals", extra: `"capacity":10,"pricePerDay":"1500.005"`, fields: []string{"pricePerDay"}},
		{name: "price above column range", extra: `"capacity":10,"pricePerDay":100000000`, fields: []string{"pricePerDay"}},
		{name: "rating with two decimals", extra: `"capacity":10,"pricePerDay":1,"rating":4.55`, fields: []string{"rating"}},
		{name: "rating above five", extra: `"capacity":10,"pricePerDay":1,"rating":5.5`, fields: []string{"rating"}},
		{name: "negative reviews", extra: `"capacity":10,"pricePerDay":1,"reviewCount":-2`, fields: []string{"reviewCount"}},
		{name: "bad list", extra: `"capacity":10,"pricePerDay":1,"amenities":["wifi",3]`, fields: []string{"amenities.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVenue(decode(t, "{"+base+","+tt.extra+"}"))
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, "1500.00", v.PricePerDay.String())
				assert.Equal(t, 4.5, v.Rating)
				assert.True(t, v.Available)
				assert.Empty(t, v.SuitableFor)
				return
			}
			assert.ElementsMatch(t, tt.fields, issueFields(t, err))
		})
	}
}

func TestParseVenuePatchOnlyRecordsPresentKeys(t *testing.T) {
	patch, err := ParseVenuePatch(decode(t, `{"city": "Dallas", "available": false}`))
	require.NoError(t, err)

	assert.Equal(t, Patch{"city": "Dallas", "available": false}, patch)
}

func TestParseVenuePatchValidatesPresentKeys(t *testing.T) {
	_, err := ParseVenuePatch(decode(t, `{"capacity": -5, "name": "", "rating": null}`))
	assert.ElementsMatch(t, []string{"capacity", "name", "rating"}, issueFields(t, err))
}

func TestParseBlogPost(t *testing.T) {
	post, err := ParseBlogPost(decode(t, `{
		"title": "Ten tips", "slug": "ten-tips", "excerpt": "e", "content": "<p>c</p>",
		"category": "planning", "tags": ["a", "b"]
	}`))
	require.NoError(t, err)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, []string{"a", "b"}, []string(post.Tags))

	_, err = ParseBlogPost(decode(t, `{
		"title": "t", "slug": "Not A Slug", "excerpt": "e", "content": "c", "category": "c"
	}`))
	assert.Equal(t, []string{"slug"}, issueFields(t, err))
}

func TestParseBlogPostPatch(t *testing.T) {
	patch, err := ParseBlogPostPatch(decode(t, `{"published": true, "id": "x", "updatedAt": "2020-01-01"}`))
	require.NoError(t, err)
	assert.Equal(t, Patch{"published": true}, patch)
}

func TestParseServiceDefaults(t *testing.T) {
	s, err := ParseService(decode(t, `{"title": "Decor", "description": "d"}`))
	require.NoError(t, err)

	assert.Equal(t, "primary", s.Color)
	assert.Equal(t, "Calendar", s.Icon)
	assert.True(t, s.Active)
	assert.Zero(t, s.DisplayOrder)
	assert.NotNil(t, s.Features)
}

func TestParseQuoteStatusUpdate(t *testing.T) {
	update, patch, err := ParseQuoteStatusUpdate(decode(t, `{"status": "quoted", "estimatedCost": "4200.50"}`))
	require.NoError(t, err)
	assert.Equal(t, models.QuoteStatusQuoted, update.Status)
	require.NotNil(t, update.EstimatedCost)
	assert.Equal(t, "4200.50", update.EstimatedCost.String())
	assert.Equal(t, "quoted", patch["status"])
	require.IsType(t, models.Money{}, patch["estimated_cost"])
	assert.Equal(t, "4200.50", patch["estimated_cost"].(models.Money).String())

	update, patch, err = ParseQuoteStatusUpdate(decode(t, `{"status": "quoted", "estimatedCost": null}`))
	require.NoError(t, err)
	assert.Nil(t, update.EstimatedCost)
	assert.Contains(t, patch, "estimated_cost")
	assert.Nil(t, patch["estimated_cost"])

	_, _, err = ParseQuoteStatusUpdate(decode(t, `{"status": "quoted", "estimatedCost": "1500.005"}`))
	assert.Equal(t, []string{"estimatedCost"}, issueFields(t, err))

	_, _, err = ParseQuoteStatusUpdate(decode(t, `{"status": "quoted", "estimatedCost": 1500.005}`))
	assert.Equal(t, []string{"estimatedCost"}, issueFields(t, err))

	update, _, err = ParseQuoteStatusUpdate(decode(t, `{"status": "quoted", "estimatedCost": "1500.000"}`))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", update.EstimatedCost.String())

	_, _, err = ParseQuoteStatusUpdate(decode(t, `{"status": "archived"}`))
	assert.Equal(t, []string{"status"}, issueFields(t, err))

	_, _, err = ParseQuoteStatusUpdate(decode(t, `{}`))
	assert.Equal(t, []string{"status"}, issueFields(t, err))
}

func TestParseContactStatusUpdate(t *testing.T) {
	status, err := ParseContactStatusUpdate(decode(t, `{"status": "read"}`))
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, status)

	_, err = ParseContactStatusUpdate(decode(t, `{"status": "archived"}`))
	assert.Equal(t, []string{"status"}, issueFields(t, err))
}

func TestParseLoginKeepsPasswordVerbatim(t *testing.T) {
	creds, err := ParseLogin(decode(t, `{"username": " admin ", "password": " pass "}`))
	require.NoError(t, err)
	assert.Equal(t, "admin", creds.Username)
	assert.Equal(t, " pass ", creds.Password)

	_, err = ParseLogin(decode(t, `{}`))
	assert.ElementsMatch(t, []string{"username", "password"}, issueFields(t, err))
}

func TestParseVenueFilter(t *testing.T) {
	tests := []struct {
		query    string
		min, max int
		wantErr  bool
	}{
		{query: ""},
		{query: "capacity=any"},
		{query: "capacity=1-50", min: 1, max: 50},
		{query: "capacity=201-500", min: 201, max: 500},
		{query: "capacity=500%2B", min: 500, max: 99999},
		{query: "capacity=500+", min: 500, max: 99999},
		{query: "capacity=huge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filter, err := ParseVenueFilter(q)
			if tt.wantErr {
				assert.Equal(t, []string{"capacity"}, issueFields(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.min, filter.MinCapacity)
			assert.Equal(t, tt.max, filter.MaxCapacity)
		})
	}
}

func TestParseOptionalBool(t *testing.T) {
	q := url.Values{"published": {"false"}, "active": {"maybe"}}

	got := ParseOptionalBool(q, "published")
	require.NotNil(t, got)
	assert.False(t, *got)
	assert.Nil(t, ParseOptionalBool(q, "active"))
	assert.Nil(t, ParseOptionalBool(q, "missing"))
}
