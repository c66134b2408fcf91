package schema

import (
	"github.com/eventpilot/backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	// numeric(10,2) columns hold at most eight integer digits.
	maxMoney  = decimal.RequireFromString("99999999.99")
	maxRating = decimal.NewFromInt(5)
)

func ratingValue(d decimal.Decimal) any { return d.InexactFloat64() }

var (
	quoteStatuses   = statusStrings(models.QuoteStatuses)
	contactStatuses = statusStrings(models.ContactStatuses)
)

func statusStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Quote requests come from the public form. Status, estimate and the
// server managed columns are set by the admin workflow only.
func quoteRules(r *reader) models.QuoteRequest {
	q := models.QuoteRequest{
		UserID:        r.optionalUUID("userId", "user_id"),
		EventType:     r.requiredString("eventType", "event_type"),
		GuestCount:    r.requiredString("guestCount", "guest_count"),
		EventDate:     r.date("eventDate", "event_date"),
		Budget:        r.requiredString("budget", "budget"),
		Venue:         r.optionalString("venue", "venue"),
		Name:          r.requiredString("name", "name"),
		Email:         r.email("email", "email"),
		Phone:         r.requiredString("phone", "phone"),
		ContactMethod: r.stringWithDefault("contactMethod", "contact_method", "email"),
		Details:       r.optionalString("details", "details"),
		Status:        models.QuoteStatusPending,
	}
	q.Services = datatypes.NewJSONType(quoteServicesRules(r))
	return q
}

func quoteServicesRules(r *reader) models.QuoteServices {
	raw, ok := r.object("services")
	if !ok {
		return models.QuoteServices{}
	}

	nested := newReader(raw, false)
	services := models.QuoteServices{
		Planning:   nested.boolean("planning", "", false),
		Decoration: nested.boolean("decoration", "", false),
		Rentals:    nested.boolean("rentals", "", false),
		Lighting:   nested.boolean("lighting", "", false),
		Staging:    nested.boolean("staging", "", false),
		Academic:   nested.boolean("academic", "", false),
	}
	for _, issue := range nested.issues {
		r.fail("services."+issue.Field, "%s", issue.Message)
	}
	if len(nested.issues) == 0 {
		r.set("services", datatypes.NewJSONType(services))
	}
	return services
}

func contactRules(r *reader) models.ContactMessage {
	return models.ContactMessage{
		FirstName: r.requiredString("firstName", "first_name"),
		LastName:  r.requiredString("lastName", "last_name"),
		Email:     r.email("email", "email"),
		Phone:     r.optionalString("phone", "phone"),
		Subject:   r.requiredString("subject", "subject"),
		Message:   r.requiredString("message", "message"),
		Status:    models.ContactStatusUnread,
	}
}

func blogPostRules(r *reader) models.BlogPost {
	post := models.BlogPost{
		Title:         r.requiredString("title", "title"),
		Slug:          r.requiredString("slug", "slug"),
		Excerpt:       r.requiredString("excerpt", "excerpt"),
		Content:       r.requiredString("content", "content"),
		Category:      r.requiredString("category", "category"),
		Tags:          r.stringList("tags", "tags"),
		FeaturedImage: r.optionalString("featuredImage", "featured_image"),
		Published:     r.boolean("published", "published", false),
		PublishedAt:   r.optionalDate("publishedAt", "published_at"),
	}
	if post.Slug != "" && !slugRegex.MatchString(post.Slug) {
		r.fail("slug", "Slug may only contain lowercase letters, digits and hyphens")
		delete(r.patch, "slug")
	}
	return post
}

func galleryItemRules(r *reader) models.GalleryItem {
	return models.GalleryItem{
		Title:       r.requiredString("title", "title"),
		Description: r.optionalString("description", "description"),
		ImageURL:    r.requiredString("imageUrl", "image_url"),
		Category:    r.requiredString("category", "category"),
		EventType:   r.optionalString("eventType", "event_type"),
		Featured:    r.boolean("featured", "featured", false),
	}
}

func venueRules(r *reader) models.Venue {
	v := models.Venue{
		Name:        r.requiredString("name", "name"),
		Description: r.optionalString("description", "description"),
		Address:     r.requiredString("address", "address"),
		City:        r.requiredString("city", "city"),
		State:       r.requiredString("state", "state"),
		ZipCode:     r.requiredString("zipCode", "zip_code"),
		Capacity:    r.integer("capacity", "capacity", true, 0, 1),
		SuitableFor: r.stringList("suitableFor", "suitable_for"),
		Amenities:   r.stringList("amenities", "amenities"),
		Images:      r.stringList("images", "images"),
		ReviewCount: r.integer("reviewCount", "review_count", false, 0, 0),
		Available:   r.boolean("available", "available", true),
	}
	if price := r.money("pricePerDay", "price_per_day", true, false); price != nil {
		v.PricePerDay = *price
	}
	if rating := r.decimal("rating", "rating", false, false, 1, decimal.Zero, maxRating, ratingValue); rating != nil {
		v.Rating = rating.InexactFloat64()
	}
	return v
}

func serviceRules(r *reader) models.Service {
	return models.Service{
		Title:        r.requiredString("title", "title"),
		Description:  r.requiredString("description", "description"),
		Features:     r.stringList("features", "features"),
		Color:        r.stringWithDefault("color", "color", "primary"),
		Icon:         r.stringWithDefault("icon", "icon", "Calendar"),
		ImageURL:     r.optionalString("imageUrl", "image_url"),
		Active:       r.boolean("active", "active", true),
		DisplayOrder: r.integer("displayOrder", "display_order", false, 0, 0),
	}
}
