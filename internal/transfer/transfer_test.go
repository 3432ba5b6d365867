package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviedb/internal/movie"
	"moviedb/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "movies.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImport_Inception(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[{"title":"Inception","director":"Nolan","genre":"Sci-Fi","year":2010,"rating":8.8}]`)

	n, err := Import(ctx, s, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	movies, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.NotZero(t, movies[0].ID)
	assert.Equal(t, "Inception", movies[0].Title)

	out := filepath.Join(t.TempDir(), "exported.json")
	n, err = Export(ctx, s, out, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var exported []map[string]any
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, map[string]any{
		"id":       float64(movies[0].ID),
		"title":    "Inception",
		"director": "Nolan",
		"genre":    "Sci-Fi",
		"year":     float64(2010),
		"rating":   8.8,
	}, exported[0])
}

func TestImport_FileNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	n, err := Import(context.Background(), s, filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Equal(t, movie.KindIO, movie.KindOf(err))
}

func TestImport_MalformedJSON(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[{"title":"Inception",`)

	_, err := Import(ctx, s, path, nil)
	require.Error(t, err)
	assert.Equal(t, movie.KindParse, movie.KindOf(err))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImport_MissingField(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[
		{"title":"Alien","director":"Scott","genre":"Horror","year":1979,"rating":8.5},
		{"title":"Heat","director":"Mann","genre":"Crime","year":1995}
	]`)

	_, err := Import(ctx, s, path, nil)
	require.Error(t, err)
	assert.Equal(t, movie.KindValidation, movie.KindOf(err))
	assert.Contains(t, err.Error(), "rating")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "records are checked before any insert")
}

// A bad rating mid-file stops the import but earlier rows stay committed.
func TestImport_PartialCommitOnBadRating(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[
		{"title":"Alien","director":"Scott","genre":"Horror","year":1979,"rating":8.5},
		{"title":"Broken","director":"Nobody","genre":"None","year":2000,"rating":11.5},
		{"title":"Heat","director":"Mann","genre":"Crime","year":1995,"rating":8.3}
	]`)

	n, err := Import(ctx, s, path, nil)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, movie.KindValidation, movie.KindOf(err))

	movies, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)
}

func TestExport_NoData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	out := filepath.Join(t.TempDir(), "exported.json")
	_, err := Export(context.Background(), s, out, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, movie.KindNotFound, movie.KindOf(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no file is written for an empty catalog")
}

func TestExport_FormatIndentAndUnicode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, movie.Movie{Title: "霸王別姬", Director: "陳凱歌", Genre: "劇情", Year: 1993, Rating: 9.6})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "exported.json")
	_, err = Export(ctx, s, out, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"id\": "), "4-space indentation, got:\n%s", text)
	assert.Contains(t, text, `"title": "霸王別姬"`, "multi-byte characters are not escaped")
	assert.NotContains(t, text, `\u`)

	keys := []string{`"id"`, `"title"`, `"director"`, `"genre"`, `"year"`, `"rating"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(text, k)
		require.GreaterOrEqual(t, idx, 0, k)
		assert.Greater(t, idx, last, "key order %s", k)
		last = idx
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := newTestStore(t)
	want := []movie.Movie{
		{Title: "Star Wars", Director: "Lucas", Genre: "Sci-Fi", Year: 1977, Rating: 8.6},
		{Title: "Inception", Director: "Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8},
		{Title: "Parasite", Director: "Bong", Genre: "Thriller", Year: 2019, Rating: 8.5},
	}
	for _, m := range want {
		_, err := src.Insert(ctx, m)
		require.NoError(t, err)
	}

	out := filepath.Join(t.TempDir(), "exported.json")
	_, err := Export(ctx, src, out, nil)
	require.NoError(t, err)

	dst := newTestStore(t)
	n, err := Import(ctx, dst, out, nil)
	require.NoError(t, err)
	assert.Equal(t, len(want), n)

	got, err := dst.ListAll(ctx)
	require.NoError(t, err)

	byTitle := cmpopts.SortSlices(func(a, b movie.Movie) bool { return a.Title < b.Title })
	ignoreID := cmpopts.IgnoreFields(movie.Movie{}, "ID")
	if diff := cmp.Diff(want, got, byTitle, ignoreID); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

type failingInserter struct {
	calls int
}

func (f *failingInserter) Insert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	f.calls++
	return movie.Movie{}, errors.New("disk full")
}

func TestImport_InsertErrorPropagates(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `[{"title":"A","director":"B","genre":"C","year":1,"rating":5},{"title":"D","director":"E","genre":"F","year":2,"rating":6}]`)
	dst := &failingInserter{}

	n, err := Import(context.Background(), dst, path, nil)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, dst.calls, "import stops at the first failure")
	assert.Contains(t, err.Error(), "disk full")
}

func TestImport_WholeNumberFloatYear(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[{"title":"Inception","director":"Nolan","genre":"Sci-Fi","year":2010.0,"rating":8.8}]`)

	n, err := Import(ctx, s, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	m, err := s.FindByTitleSubstring(ctx, "Inception")
	require.NoError(t, err)
	assert.Equal(t, 2010, m.Year)
}

func TestImport_FractionalYear(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	path := writeFile(t, `[{"title":"Inception","director":"Nolan","genre":"Sci-Fi","year":2010.5,"rating":8.8}]`)

	_, err := Import(ctx, s, path, nil)
	require.Error(t, err)
	assert.Equal(t, movie.KindValidation, movie.KindOf(err))
	assert.Contains(t, err.Error(), "year")

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExport_WholeRatingKeepsDecimal(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, movie.Movie{Title: "Heat", Director: "Mann", Genre: "Crime", Year: 1995, Rating: 9})
	require.NoError(t, err)
	_, err = s.Insert(ctx, movie.Movie{Title: "Alien", Director: "Scott", Genre: "Horror", Year: 1979, Rating: 8.5})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "exported.json")
	_, err = Export(ctx, s, out, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"rating": 9.0`)
	assert.Contains(t, text, `"rating": 8.5`)
	assert.Contains(t, text, `"year": 1995,`)
}

func TestImport_EmptyArray(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	n, err := Import(context.Background(), s, writeFile(t, `[]`), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
