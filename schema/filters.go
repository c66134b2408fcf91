package schema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eventpilot/backend/models"
)

// capacityBuckets are the inclusive guest ranges offered by the venue search.
// 500 belongs to both of the top two buckets.
var capacityBuckets = map[string][2]int{
	"1-50":    {1, 50},
	"51-100":  {51, 100},
	"101-200": {101, 200},
	"201-500": {201, 500},
	"500+":    {500, 99999},
}

// CapacityBucket resolves a bucket name to its inclusive bounds.
func CapacityBucket(name string) (min, max int, ok bool) {
	b, ok := capacityBuckets[name]
	return b[0], b[1], ok
}

// ParseVenueFilter reads the venue search query. Blank values and "any" mean
// no filter. A "+" in the bucket may arrive decoded as a space.
func ParseVenueFilter(q url.Values) (models.VenueFilter, error) {
	r := newReader(nil, false)
	filter := models.VenueFilter{
		City:      strings.TrimSpace(q.Get("city")),
		EventType: strings.TrimSpace(q.Get("eventType")),
	}
	if strings.EqualFold(filter.EventType, "any") {
		filter.EventType = ""
	}

	capacity := strings.TrimSpace(q.Get("capacity"))
	if strings.HasSuffix(q.Get("capacity"), " ") && capacity == "500" {
		capacity = "500+"
	}
	if capacity != "" && !strings.EqualFold(capacity, "any") {
		min, max, ok := CapacityBucket(capacity)
		if !ok {
			r.fail("capacity", "Unknown capacity range '%s'", capacity)
		} else {
			filter.MinCapacity, filter.MaxCapacity = min, max
		}
	}
	return filter, r.err()
}

// ParseOptionalBool reads a true/false query flag. Anything else is absent.
func ParseOptionalBool(q url.Values, key string) *bool {
	b, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil
	}
	return &b
}
