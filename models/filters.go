package models

// VenueFilter narrows the public venue search. Zero values mean no filter.
type VenueFilter struct {
	City        string
	EventType   string
	MinCapacity int
	MaxCapacity int
}

func (f VenueFilter) HasCapacity() bool {
	return f.MaxCapacity > 0
}
