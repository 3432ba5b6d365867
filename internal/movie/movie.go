// Package movie defines the catalog record and the error kinds shared by the
// storage, transfer and console layers.
package movie

import "strconv"

// Rating bounds enforced by the movies table CHECK constraint.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Movie is one row of the movies table.
type Movie struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Genre    string  `json:"genre"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}

// Fields returns the display values in column order, without the id.
func (m Movie) Fields() []string {
	return []string{
		m.Title,
		m.Director,
		m.Genre,
		strconv.Itoa(m.Year),
		FormatRating(m.Rating),
	}
}

// FormatRating renders a rating with one decimal place.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Headers are the column titles matching Fields.
var Headers = []string{"Title", "Director", "Genre", "Year", "Rating"}
