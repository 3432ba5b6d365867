package console

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
	"moviedb/internal/transfer"
	"moviedb/internal/ui"

	"go.uber.org/zap"
)

const keepHint = " (Enter to keep): "

func (c *Controller) importMovies(ctx context.Context) error {
	n, err := transfer.Import(ctx, c.catalog, c.opts.ImportPath, logging.For(c.log, logging.CategoryTransfer))
	if err != nil {
		if n > 0 {
			c.println(c.opts.Styles.Warning, fmt.Sprintf("%d movies were imported before the failure", n))
		}
		return err
	}
	c.println(c.opts.Styles.Success, fmt.Sprintf("Imported %d movies", n))
	return nil
}

func (c *Controller) exportMovies(ctx context.Context) error {
	n, err := transfer.Export(ctx, c.catalog, c.opts.ExportPath, logging.For(c.log, logging.CategoryTransfer))
	if err != nil {
		return err
	}
	c.println(c.opts.Styles.Success, fmt.Sprintf("Exported %d movies to %s", n, c.opts.ExportPath))
	return nil
}

func (c *Controller) queryMovies(ctx context.Context) error {
	n, err := c.catalog.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return movie.E(movie.KindNotFound, "query", transfer.ErrNoData)
	}

	answer, err := c.in.confirm("List all movies? (y/n): ")
	if err != nil {
		return err
	}

	switch answer {
	case "y":
		movies, err := c.catalog.ListAll(ctx)
		if err != nil {
			return err
		}
		c.showMovies("Movie list", movies...)
	case "n":
		pattern, err := c.in.ask("Title to search: ")
		if err != nil {
			return err
		}
		m, err := c.catalog.FindByTitleSubstring(ctx, pattern)
		if err != nil {
			return err
		}
		c.showMovies("", m)
	}
	return nil
}

func (c *Controller) addMovie(ctx context.Context) error {
	var m movie.Movie
	var err error

	if m.Title, err = c.in.ask("Title: "); err != nil {
		return err
	}
	if m.Director, err = c.in.ask("Director: "); err != nil {
		return err
	}
	if m.Genre, err = c.in.ask("Genre: "); err != nil {
		return err
	}
	if m.Year, err = c.askInt("Year: ", nil); err != nil {
		return err
	}
	if m.Rating, err = c.askFloat("Rating (1.0 - 10.0): ", nil); err != nil {
		return err
	}

	stored, err := c.catalog.Insert(ctx, m)
	if err != nil {
		return err
	}
	c.log.Info("movie added", zap.Int64("id", stored.ID), zap.String("title", stored.Title))
	c.println(c.opts.Styles.Success, fmt.Sprintf("Movie added (id %d)", stored.ID))
	return nil
}

func (c *Controller) modifyMovie(ctx context.Context) error {
	pattern, err := c.in.ask("Title of the movie to modify: ")
	if err != nil {
		return err
	}
	current, err := c.catalog.FindByTitleSubstring(ctx, pattern)
	if err != nil {
		return err
	}
	c.showMovies("", current)

	updated := current
	if updated.Title, err = c.askString("New title", current.Title); err != nil {
		return err
	}
	if updated.Director, err = c.askString("New director", current.Director); err != nil {
		return err
	}
	if updated.Genre, err = c.askString("New genre", current.Genre); err != nil {
		return err
	}
	if updated.Year, err = c.askInt("New year"+keepHint, &current.Year); err != nil {
		return err
	}
	if updated.Rating, err = c.askFloat("New rating (1.0 - 10.0)"+keepHint, &current.Rating); err != nil {
		return err
	}

	// Update by the stored title, not the typed pattern.
	if err := c.catalog.UpdateByExactTitle(ctx, current.Title, updated); err != nil {
		return err
	}
	c.log.Info("movie updated", zap.Int64("id", current.ID), zap.String("title", updated.Title))
	c.println(c.opts.Styles.Success, "Movie updated")
	return nil
}

func (c *Controller) deleteMovies(ctx context.Context) error {
	answer, err := c.in.confirm("Delete all movies? (y/n): ")
	if err != nil {
		return err
	}

	switch answer {
	case "y":
		if _, err := c.catalog.DeleteAll(ctx); err != nil {
			return err
		}
		c.println(c.opts.Styles.Success, "All movies deleted")
	case "n":
		pattern, err := c.in.ask("Title of the movie to delete: ")
		if err != nil {
			return err
		}
		m, err := c.catalog.FindByTitleSubstring(ctx, pattern)
		if err != nil {
			return err
		}
		c.showMovies("", m)

		sure, err := c.in.confirm("Delete it? (y/n): ")
		if err != nil {
			return err
		}
		if sure != "y" {
			c.println(c.opts.Styles.Body, "Deletion cancelled")
			return nil
		}
		n, err := c.catalog.DeleteByTitleSubstring(ctx, pattern)
		if err != nil {
			return err
		}
		c.println(c.opts.Styles.Success, fmt.Sprintf("Deleted %d movies", n))
	}
	return nil
}

func (c *Controller) showMovies(title string, movies ...movie.Movie) {
	table := ui.NewTable(title, movie.Headers)
	for _, m := range movies {
		table.AddRow(m.Fields()...)
	}
	fmt.Fprint(c.out, table.View(c.opts.Styles))
}

// askString keeps def when the answer is blank.
func (c *Controller) askString(label, def string) (string, error) {
	answer, err := c.in.ask(label + keepHint)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// askInt parses an integer answer. A blank answer returns *def when def is
// non-nil and is a parse error otherwise.
func (c *Controller) askInt(prompt string, def *int) (int, error) {
	answer, err := c.in.ask(prompt)
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" && def != nil {
		return *def, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, movie.E(movie.KindParse, "year", errors.New("year must be a whole number"))
	}
	return n, nil
}

// askFloat is askInt for ratings.
func (c *Controller) askFloat(prompt string, def *float64) (float64, error) {
	answer, err := c.in.ask(prompt)
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" && def != nil {
		return *def, nil
	}
	f, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, movie.E(movie.KindParse, "rating", errors.New("rating must be a number"))
	}
	return f, nil
}
