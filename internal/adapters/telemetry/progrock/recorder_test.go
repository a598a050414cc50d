package progrock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/crate/internal/adapters/telemetry/progrock"
	"go.trai.ch/crate/internal/core/domain"
	"go.trai.ch/crate/internal/core/ports"
)

// captureWriter records every status update pushed through the recorder, so
// the test can confirm vertex activity actually reaches the destination
// writer instead of an unread buffer.
type captureWriter struct {
	mu      sync.Mutex
	updates int
	closed  bool
}

func (w *captureWriter) WriteStatus(*vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates++
	return nil
}

func (w *captureWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestRecorder_StreamsUpdatesToWriter(t *testing.T) {
	w := &captureWriter{}
	rec := progrock.NewRecorder(w)

	ctx, vertex := rec.Record(context.Background(), "sprite: build")
	require.NotNil(t, vertex)
	assert.Same(t, vertex, ports.VertexFromContext(ctx))

	_, err := vertex.Stdout().Write([]byte("collecting modules\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelWarn, "icon missing")
	vertex.Complete(nil)

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Positive(t, w.updates)
}

func TestRecorder_CloseClosesWriter(t *testing.T) {
	w := &captureWriter{}
	rec := progrock.NewRecorder(w)

	require.NoError(t, rec.Close())

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.True(t, w.closed)
}
