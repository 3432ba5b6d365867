// Package console runs the interactive movie catalog menu.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"moviedb/internal/movie"
	"moviedb/internal/transfer"
	"moviedb/internal/ui"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Catalog is the storage the menu handlers act on.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	ListAll(ctx context.Context) ([]movie.Movie, error)
	FindByTitleSubstring(ctx context.Context, pattern string) (movie.Movie, error)
	Insert(ctx context.Context, m movie.Movie) (movie.Movie, error)
	UpdateByExactTitle(ctx context.Context, oldTitle string, m movie.Movie) error
	DeleteAll(ctx context.Context) (int64, error)
	DeleteByTitleSubstring(ctx context.Context, pattern string) (int64, error)
}

// Options configures a Controller.
type Options struct {
	ImportPath string
	ExportPath string
	Styles     ui.Styles
	Logger     *zap.Logger
}

// Controller is the menu loop.
type Controller struct {
	catalog Catalog
	in      *prompter
	out     io.Writer
	opts    Options
	log     *zap.Logger
}

// Menu options.
const (
	optionImport = iota + 1
	optionQuery
	optionAdd
	optionModify
	optionDelete
	optionExport
	optionExit
)

const menu = `----- Movie Catalog -----
1. Import movies
2. Query movies
3. Add movie
4. Modify movie
5. Delete movie
6. Export movies
7. Exit
-------------------------`

// New returns a Controller reading from in and writing to out.
func New(catalog Catalog, in io.Reader, out io.Writer, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		catalog: catalog,
		in:      newPrompter(in, out),
		out:     out,
		opts:    opts,
		log:     log,
	}
}

// Run shows the menu until the user exits or input ends. Handler errors are
// reported and the loop continues; only cancellation or a failed read is
// returned.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, c.opts.Styles.Title.Render(menu))
		line, err := c.in.ask(c.opts.Styles.Prompt.Render("Select an option (1-7): "))
		if err != nil {
			return c.finish(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.log.Debug("invalid menu input", zap.String("input", line))
			c.println(c.opts.Styles.Warning, "Please enter a number 1-7")
			continue
		}

		var handlerErr error
		switch choice {
		case optionImport:
			handlerErr = c.importMovies(ctx)
		case optionQuery:
			handlerErr = c.queryMovies(ctx)
		case optionAdd:
			handlerErr = c.addMovie(ctx)
		case optionModify:
			handlerErr = c.modifyMovie(ctx)
		case optionDelete:
			handlerErr = c.deleteMovies(ctx)
		case optionExport:
			handlerErr = c.exportMovies(ctx)
		case optionExit:
			c.println(c.opts.Styles.Body, "Goodbye")
			return nil
		default:
			continue
		}

		if errors.Is(handlerErr, io.EOF) {
			return c.finish(handlerErr)
		}
		if handlerErr != nil {
			c.report(handlerErr)
		}
	}
}

// finish ends the loop on input errors. End of input is a normal exit.
func (c *Controller) finish(err error) error {
	if errors.Is(err, io.EOF) {
		c.log.Debug("input closed")
		fmt.Fprintln(c.out)
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

// report renders an error by kind.
func (c *Controller) report(err error) {
	c.log.Debug("handler error", zap.Error(err), zap.Stringer("kind", movie.KindOf(err)))

	s := c.opts.Styles
	switch movie.KindOf(err) {
	case movie.KindNotFound:
		if errors.Is(err, transfer.ErrNoData) {
			c.println(s.Warning, "No movie data")
		} else {
			c.println(s.Warning, "Movie not found")
		}
	case movie.KindIO:
		if errors.Is(err, transfer.ErrFileNotFound) {
			c.println(s.Error, "File not found: "+c.opts.ImportPath)
		} else {
			c.println(s.Error, "I/O error: "+err.Error())
		}
	case movie.KindParse:
		c.println(s.Error, "Invalid input: "+err.Error())
	default:
		c.println(s.Error, "Error: "+err.Error())
	}
}

func (c *Controller) println(style lipgloss.Style, msg string) {
	fmt.Fprintln(c.out, style.Render(msg))
}
