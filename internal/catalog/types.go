package catalog

import (
	"strings"

	"gamereviews/backend/internal/models"
)

// Option is a value/label pair offered by the search form.
type Option struct {
	Value string
	Label string
}

// Platforms lists the platform filters the search form offers, keyed by catalog platform ID.
var Platforms = []Option{
	{Value: "94", Label: "PC"},
	{Value: "146", Label: "PlayStation 4"},
	{Value: "17", Label: "Mac"},
	{Value: "145", Label: "Xbox One"},
}

// SortKeys lists the orderings the search form offers.
var SortKeys = []Option{
	{Value: "name", Label: "By Name"},
	{Value: "number_of_user_reviews", Label: "By Review Count"},
	{Value: "date_last_updated", Label: "By Update Date"},
}

// DefaultLimit is the number of results requested per search.
const DefaultLimit = 25

// Query describes a catalog search.
type Query struct {
	Name     string
	Platform string
	Sort     string
	Limit    int
}

// Named is the {id, name} shape the catalog uses for ratings and platforms.
type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Result is a single game as returned by the catalog.
type Result struct {
	Name               string  `json:"name"`
	Deck               string  `json:"deck"`
	OriginalGameRating []Named `json:"original_game_rating"`
	Platforms          []Named `json:"platforms"`
}

type searchResponse struct {
	Error                string   `json:"error"`
	StatusCode           int      `json:"status_code"`
	NumberOfTotalResults int      `json:"number_of_total_results"`
	Results              []Result `json:"results"`
}

// Game is the normalized record built from a Result.
type Game struct {
	Name      string `json:"name"`
	Tagline   string `json:"tagline"`
	Rating    string `json:"rating"`
	Platforms string `json:"platforms"`
}

// Normalize keeps the first listed rating (or the Unavailable sentinel) and
// flattens platform names into a " | " separated string.
func (r Result) Normalize() Game {
	rating := models.RatingUnavailable
	if len(r.OriginalGameRating) > 0 && r.OriginalGameRating[0].Name != "" {
		rating = r.OriginalGameRating[0].Name
	}

	names := make([]string, 0, len(r.Platforms))
	for _, p := range r.Platforms {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}

	return Game{
		Name:      r.Name,
		Tagline:   r.Deck,
		Rating:    rating,
		Platforms: strings.Join(names, " | "),
	}
}

// Model converts the record into a storable Game row.
func (g Game) Model() models.Game {
	return models.Game{
		Name:      g.Name,
		Tagline:   g.Tagline,
		Rating:    g.Rating,
		Platforms: g.Platforms,
	}
}

// IsValidPlatform reports whether v is one of the offered platform filters.
func IsValidPlatform(v string) bool {
	return hasOption(Platforms, v)
}

// IsValidSort reports whether v is one of the offered sort keys.
func IsValidSort(v string) bool {
	return hasOption(SortKeys, v)
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
