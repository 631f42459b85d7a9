package scenario

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mrops-br/catalog-filter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedOutput = `Open-Closed Principle
Green products (legacy filter):
 - Tree is green
Green products (specification filter):
 - Tree is green
Large blue products:
 - House is large and blue
Large blue circular products:
 - House is large, blue and circular
`

func TestRun_SeedCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, domain.SeedCatalog()))
	assert.Equal(t, expectedOutput, buf.String())
}

func TestRun_EmptyCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Run(&buf, nil))
	assert.Equal(t, `Open-Closed Principle
Green products (legacy filter):
Green products (specification filter):
Large blue products:
Large blue circular products:
`, buf.String())
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestRun_StopsAtFirstWriteError(t *testing.T) {
	t.Parallel()

	w := &failingWriter{}
	err := Run(w, domain.SeedCatalog())
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, w.writes)
}
