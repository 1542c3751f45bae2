package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

func TestWorldMetrics_Observer(t *testing.T) {
	reg := prometheus.NewRegistry()
	wm := NewWorldMetrics(reg)

	m, err := world.NewCoordinateMetrics(vec.Splat(4), vec.Splat(2), vec.Splat(4))
	require.NoError(t, err)
	w, err := world.NewWorld(m, 1, world.WithObserver(wm))
	require.NoError(t, err)

	writes := []struct {
		x    int
		s    byte
		want bool
	}{
		{0, 0, false}, // elided
		{0, 1, true},
		{0, 1, false},
		{1, 2, true},
		{-1, 1, true}, // соседний суперчанк
	}
	for _, wr := range writes {
		changed, err := w.SetVoxelState(wr.x, 0, 0, []byte{wr.s})
		require.NoError(t, err)
		assert.Equal(t, wr.want, changed)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(wm.superChunks))
	assert.Equal(t, 2.0, testutil.ToFloat64(wm.chunks))
	assert.Equal(t, 3.0, testutil.ToFloat64(wm.writes.WithLabelValues("changed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(wm.writes.WithLabelValues("unchanged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(wm.writes.WithLabelValues("elided")))

	g := mesh.BuildNaive(w.ChunkVoxelFaces(w.ComputeChunkBounds(), world.NonZero))
	wm.ObserveGeometry(g)
	assert.Equal(t, 1.0, testutil.ToFloat64(wm.meshBuilds))
	assert.Equal(t, 14.0, testutil.ToFloat64(wm.faces), "Три вокселя в ряд дают 14 граней")
	assert.Equal(t, 84.0, testutil.ToFloat64(wm.vertices))
}

func TestExporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	wm := NewWorldMetrics(reg)
	wm.ChunkAllocated(0, 0)

	e, err := NewExporter(reg)
	require.NoError(t, err)
	require.NoError(t, e.Update())
	assert.Greater(t, testutil.ToFloat64(e.rss), 0.0)

	srv := httptest.NewServer(e.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "voxel_world_chunks_allocated_total 1")
	assert.Contains(t, string(body), "voxel_process_resident_memory_bytes")
}

func TestExporter_StartStop(t *testing.T) {
	e, err := NewExporter(prometheus.NewRegistry())
	require.NoError(t, err)

	// Stop без StartHTTP ничего не делает
	e.Stop()

	e.StartHTTP("127.0.0.1:0")
	e.Stop()
}
