package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRepository() *ProductRepository {
	return NewProductRepository(noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	repo := newTestRepository()
	ctx := context.Background()

	p, err := domain.NewProduct("Apple", domain.Red, domain.Large, domain.Square)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Same(t, p, found)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	repo := newTestRepository()
	ctx := context.Background()

	p, err := domain.NewProduct("Tree", domain.Green, domain.Yuge, domain.Circle)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	err = repo.Create(ctx, p)
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductRepository_FindAll_InsertionOrder(t *testing.T) {
	t.Parallel()

	repo := newTestRepository()
	ctx := context.Background()

	seed := domain.SeedCatalog()
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, all)

	// the returned slice is a snapshot
	all[0] = nil
	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, again[0])
}

func TestProductRepository_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	repo := newTestRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := domain.NewProduct("House", domain.Blue, domain.Large, domain.Circle)
			if err != nil {
				return
			}
			_ = repo.Create(ctx, p)
			_, _ = repo.FindAll(ctx)
		}()
	}
	wg.Wait()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestProductRepository_RecordsSpans(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	repo := NewProductRepository(tp.Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "ProductRepository.FindByID", spans[0].Name)
	assert.Len(t, spans[0].Events, 1, "error recorded as span event")
}
