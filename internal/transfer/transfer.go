// Package transfer moves movies between the catalog and JSON files.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"

	"moviedb/internal/movie"

	"go.uber.org/zap"
)

var (
	// ErrFileNotFound is returned by Import when the source file is missing.
	ErrFileNotFound = errors.New("file not found")
	// ErrNoData is returned by Export when the catalog is empty.
	ErrNoData = errors.New("no movie data")
)

// Inserter is the write side Import needs.
type Inserter interface {
	Insert(ctx context.Context, m movie.Movie) (movie.Movie, error)
}

// Lister is the read side Export needs.
type Lister interface {
	ListAll(ctx context.Context) ([]movie.Movie, error)
}

// maxYear bounds years to integers a float64 holds exactly.
const maxYear = 1 << 53

// importRecord uses pointers so a missing key can be told apart from a zero
// value. Year is decoded as a float so 2010.0 is accepted as 2010.
type importRecord struct {
	Title    *string  `json:"title"`
	Director *string  `json:"director"`
	Genre    *string  `json:"genre"`
	Year     *float64 `json:"year"`
	Rating   *float64 `json:"rating"`
}

func (r importRecord) toMovie() (movie.Movie, error) {
	var missing []string
	if r.Title == nil {
		missing = append(missing, "title")
	}
	if r.Director == nil {
		missing = append(missing, "director")
	}
	if r.Genre == nil {
		missing = append(missing, "genre")
	}
	if r.Year == nil {
		missing = append(missing, "year")
	}
	if r.Rating == nil {
		missing = append(missing, "rating")
	}
	if len(missing) > 0 {
		return movie.Movie{}, fmt.Errorf("missing fields %v", missing)
	}
	year := *r.Year
	if year != math.Trunc(year) || math.Abs(year) > maxYear {
		return movie.Movie{}, fmt.Errorf("year %v is not a whole number", year)
	}
	return movie.Movie{
		Title:    *r.Title,
		Director: *r.Director,
		Genre:    *r.Genre,
		Year:     int(year),
		Rating:   *r.Rating,
	}, nil
}

// Import reads a JSON array of movies from path and inserts them in order.
// The whole file is decoded before the first insert. An insert failure stops
// the import; rows already inserted stay committed and their count is
// returned alongside the error.
func Import(ctx context.Context, dst Inserter, path string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, movie.E(movie.KindIO, "import "+path, ErrFileNotFound)
	}
	if err != nil {
		return 0, movie.E(movie.KindIO, "import "+path, err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, movie.E(movie.KindParse, "import "+path, err)
	}

	movies := make([]movie.Movie, 0, len(records))
	for i, r := range records {
		m, err := r.toMovie()
		if err != nil {
			return 0, movie.E(movie.KindValidation, fmt.Sprintf("import %s: record %d", path, i), err)
		}
		movies = append(movies, m)
	}

	for i, m := range movies {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := dst.Insert(ctx, m); err != nil {
			logger.Warn("import stopped",
				zap.String("path", path),
				zap.Int("record", i),
				zap.Int("committed", i),
				zap.Error(err))
			return i, fmt.Errorf("import %s: record %d: %w", path, i, err)
		}
	}

	logger.Info("import complete", zap.String("path", path), zap.Int("count", len(movies)))
	return len(movies), nil
}

// Export writes every movie to path as an indented JSON array.
// An empty catalog writes nothing and returns ErrNoData.
func Export(ctx context.Context, src Lister, path string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	movies, err := src.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(movies) == 0 {
		return 0, movie.E(movie.KindNotFound, "export", ErrNoData)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, movie.E(movie.KindIO, "export "+path, err)
	}

	if err := encode(f, movies); err != nil {
		_ = f.Close()
		return 0, movie.E(movie.KindIO, "export "+path, err)
	}
	if err := f.Close(); err != nil {
		return 0, movie.E(movie.KindIO, "export "+path, err)
	}

	logger.Info("export complete", zap.String("path", path), zap.Int("count", len(movies)))
	return len(movies), nil
}

// exportRecord fixes the key order of an exported movie.
type exportRecord struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Director string       `json:"director"`
	Genre    string       `json:"genre"`
	Year     int          `json:"year"`
	Rating   exportRating `json:"rating"`
}

// exportRating always carries a decimal point, so 9 is written as 9.0.
type exportRating float64

func (r exportRating) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("rating %v is not a finite number", f)
	}
	b := strconv.AppendFloat(nil, f, 'f', -1, 64)
	if f == math.Trunc(f) {
		b = append(b, '.', '0')
	}
	return b, nil
}

func encode(f *os.File, movies []movie.Movie) error {
	records := make([]exportRecord, len(movies))
	for i, m := range movies {
		records[i] = exportRecord{
			ID:       m.ID,
			Title:    m.Title,
			Director: m.Director,
			Genre:    m.Genre,
			Year:     m.Year,
			Rating:   exportRating(m.Rating),
		}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
