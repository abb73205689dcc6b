package repository

// DefaultRecentLimit is used by Recent when the limit is not positive.
const DefaultRecentLimit = 50

// ListEventsOptions holds filter parameters for listing events.
// All non-empty fields are applied as AND conditions.
type ListEventsOptions struct {
	Type       string
	Repository string
	Limit      int // 0 means no limit
}
