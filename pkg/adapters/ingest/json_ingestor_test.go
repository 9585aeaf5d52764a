package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renjie/prism-units/pkg/adapters/ingest"
	"github.com/renjie/prism-units/pkg/core/domain"
)

type collector struct {
	batches  int
	requests []domain.ConversionRequest
}

func (c *collector) downstream(_ context.Context, batch []domain.ConversionRequest) error {
	c.batches++
	c.requests = append(c.requests, batch...)
	return nil
}

func TestJsonIngestorArray(t *testing.T) {
	input := `
[
  {"id": "a", "quantity": 5, "from": "km", "to": "m"},
  {"id": "b", "quantity": "0.1", "from": "b", "unit_of": "data_storage", "to": "B"},
  {"id": "c", "quantity": 1, "to": "m"},
  {"id": "d", "quantity": 1e-3, "from": "m", "to": "mm"}
]`
	c := &collector{}
	result, err := ingest.NewJsonRequestIngestor(c.downstream).IngestStream(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Success)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors[0], "from is empty")

	require.Len(t, c.requests, 3)
	assert.Equal(t, "5", c.requests[0].Quantity)
	assert.Equal(t, "0.1", c.requests[1].Quantity)
	assert.Equal(t, domain.CategoryDataStorage, c.requests[1].UnitOf)
	assert.Equal(t, "1e-3", c.requests[2].Quantity, "numbers keep their literal text")
}

func TestJsonIngestorSingleObject(t *testing.T) {
	c := &collector{}
	result, err := ingest.NewJsonRequestIngestor(c.downstream).IngestBatch(context.Background(),
		strings.NewReader(`{"quantity": 100, "from": "°C", "to": "°F"}`), "JSON")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	require.Len(t, c.requests, 1)
	assert.Equal(t, "°C", c.requests[0].From)
}

func TestJsonIngestorFlushesInBatches(t *testing.T) {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 250; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"quantity": %d, "from": "m", "to": "km"}`, i)
	}
	b.WriteString("]")

	c := &collector{}
	result, err := ingest.NewJsonRequestIngestor(c.downstream).IngestStream(context.Background(), strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 250, result.Success)
	assert.Equal(t, 3, c.batches)
	assert.Equal(t, "249", c.requests[249].Quantity)
}

func TestJsonIngestorErrors(t *testing.T) {
	c := &collector{}
	j := ingest.NewJsonRequestIngestor(c.downstream)

	// Case 1: empty stream
	result, err := j.IngestStream(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	// Case 2: not an array or object
	_, err = j.IngestStream(context.Background(), strings.NewReader(`"hello"`))
	assert.Error(t, err)

	// Case 3: wrong format
	_, err = j.IngestBatch(context.Background(), strings.NewReader(`[]`), "csv")
	assert.Error(t, err)

	// Case 4: downstream failure is returned
	boom := errors.New("boom")
	failing := ingest.NewJsonRequestIngestor(func(context.Context, []domain.ConversionRequest) error { return boom })
	_, err = failing.IngestStream(context.Background(), strings.NewReader(`[{"quantity": 1, "from": "m", "to": "km"}]`))
	assert.ErrorIs(t, err, boom)
}
