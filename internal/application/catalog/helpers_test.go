package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/blob/fs"
	"github.com/rezkam/catalog/internal/infrastructure/persistence/sqlstore"
)

var (
	admin = domain.AdminScope()
	alice = domain.AccountScope("alice")
	bob   = domain.AccountScope("bob")
)

type fixture struct {
	svc     *catalog.Service
	store   *sqlstore.Store
	content *fs.Store
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlstore.Open(ctx, sqlstore.DBConfig{Dialect: sqlstore.SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	content, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := catalog.NewService(store, content, catalog.Config{
		Meter: noop.NewMeterProvider().Meter("test"),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	return &fixture{svc: svc, store: store, content: content}
}

func movie(name string) *domain.Movie {
	return &domain.Movie{
		CzechName:    name,
		OriginalName: name,
		Year:         1999,
		Languages:    []string{"en"},
		Media:        []int{120},
	}
}

func addMovies(t *testing.T, f *fixture, scope domain.Scope, names ...string) []*domain.Movie {
	t.Helper()
	out := make([]*domain.Movie, len(names))
	for i, n := range names {
		m, err := f.svc.Movies.Add(context.Background(), scope, movie(n))
		require.NoError(t, err)
		out[i] = m
	}
	return out
}

func show(name string) *domain.Show {
	return &domain.Show{CzechName: name, OriginalName: name}
}

func season(showID string, number int) *domain.Season {
	return &domain.Season{ShowID: showID, Number: number, StartYear: 2001, EndYear: 2002, Language: "en"}
}

func episode(seasonID string, number int) *domain.Episode {
	return &domain.Episode{SeasonID: seasonID, Number: number, Name: "Episode", Length: 42}
}

// positions maps names to positions for records reloaded from storage.
func positions[T interface{ GetPosition() int }](items []T, name func(T) string) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[name(it)] = it.GetPosition()
	}
	return out
}

func movieName(m *domain.Movie) string { return m.CzechName }
