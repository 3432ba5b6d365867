package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moviedb/internal/movie"

	"go.uber.org/zap"
)

const selectColumns = `SELECT id, title, director, genre, year, rating FROM movies`

// Title matching uses instr() rather than LIKE so the match is case-sensitive
// and '%' or '_' in the pattern are taken literally.
const titleContains = `instr(title, ?) > 0`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(r rowScanner) (movie.Movie, error) {
	var m movie.Movie
	var rating sql.NullFloat64
	if err := r.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.Year, &rating); err != nil {
		return movie.Movie{}, err
	}
	m.Rating = rating.Float64
	return m, nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// ListAll returns every movie in insertion order.
func (s *Store) ListAll(ctx context.Context) ([]movie.Movie, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]movie.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// FindByTitleSubstring returns the first movie whose title contains pattern.
func (s *Store) FindByTitleSubstring(ctx context.Context, pattern string) (movie.Movie, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE `+titleContains+` ORDER BY id LIMIT 1`, pattern)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return movie.Movie{}, movie.E(movie.KindNotFound, "find "+pattern, movie.ErrNotFound)
	}
	if err != nil {
		return movie.Movie{}, fmt.Errorf("find movie: %w", err)
	}
	return m, nil
}

// Insert stores m under a new id and returns the stored copy.
func (s *Store) Insert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO movies (title, director, genre, year, rating) VALUES (?, ?, ?, ?, ?)`,
		m.Title, m.Director, m.Genre, m.Year, m.Rating)
	if err != nil {
		return movie.Movie{}, s.writeError("insert "+m.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return movie.Movie{}, fmt.Errorf("insert movie: %w", err)
	}
	m.ID = id
	s.log.Debug("movie inserted", zap.Int64("id", id), zap.String("title", m.Title))
	return m, nil
}

// UpdateByExactTitle replaces every field of the movies titled oldTitle.
// The id is never changed.
func (s *Store) UpdateByExactTitle(ctx context.Context, oldTitle string, m movie.Movie) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE movies
		SET title = ?,
			director = ?,
			genre = ?,
			year = ?,
			rating = ?
		WHERE title = ?`,
		m.Title, m.Director, m.Genre, m.Year, m.Rating, oldTitle)
	if err != nil {
		return s.writeError("update "+oldTitle, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if n == 0 {
		return movie.E(movie.KindNotFound, "update "+oldTitle, movie.ErrNotFound)
	}
	s.log.Debug("movie updated", zap.String("title", oldTitle), zap.Int64("rows", n))
	return nil
}

// DeleteAll removes every movie and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies`)
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	n, _ := res.RowsAffected()
	s.log.Info("all movies deleted", zap.Int64("rows", n))
	return n, nil
}

// DeleteByTitleSubstring removes every movie whose title contains pattern.
func (s *Store) DeleteByTitleSubstring(ctx context.Context, pattern string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE `+titleContains, pattern)
	if err != nil {
		return 0, fmt.Errorf("delete movies: %w", err)
	}
	n, _ := res.RowsAffected()
	s.log.Info("movies deleted", zap.String("pattern", pattern), zap.Int64("rows", n))
	return n, nil
}

func (s *Store) writeError(op string, err error) error {
	if isConstraintViolation(err) {
		s.log.Warn("constraint violation", zap.String("op", op), zap.Error(err))
		return movie.E(movie.KindValidation, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
