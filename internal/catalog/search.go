package catalog

import "strings"

// Listing is the common search surface of products and services
type Listing struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Kind     string `json:"kind"` // "product" or "service"
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Icon     string `json:"icon"`
}

// MatchListing reports whether a listing matches a search query:
// case-insensitive substring on name or category. An empty query matches
// everything.
func MatchListing(l Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.Category), q)
}

// FilterListings applies MatchListing over a snapshot, preserving input order.
func FilterListings(snapshot []Listing, query string) []Listing {
	var out []Listing
	for _, l := range snapshot {
		if MatchListing(l, query) {
			out = append(out, l)
		}
	}
	return out
}
