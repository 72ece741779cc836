package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/metrics"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

func testResult(t *testing.T) *experiment.Result {
	t.Helper()
	f, err := dynamo.Initialize(8, dynamo.NewRand(1))
	require.NoError(t, err)
	return &experiment.Result{
		Samples: []experiment.Sample{
			{T: 0, Stats: metrics.ComputeStats(f)},
			{T: 10, Stats: metrics.Stats{MinU: 0.1, MaxU: 1, MeanU: 0.5, MaxV: 0.4, MeanV: 0.2}},
		},
		Metrics: map[string]float64{"stability": 1},
		Final:   f,
		Steps:   10,
		Status:  sim.Finished,
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	res := testResult(t)
	runID, err := st.Save(RunMetadata{Preset: "spots", Seed: 42, Size: 8, Params: dynamo.DefaultParams()}, res)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	require.Equal(t, runID, meta.ID)
	require.Equal(t, "spots", meta.Preset)
	require.Equal(t, int64(42), meta.Seed)
	require.Equal(t, 10, meta.Steps)
	require.Equal(t, "finished", meta.Status)
	require.Equal(t, int64(1500), meta.ElapsedMS)
	require.Equal(t, 1.0, meta.Metrics["stability"])
	require.Equal(t, dynamo.DefaultParams(), meta.Params)

	samples, err := st.LoadSeries(runID)
	require.NoError(t, err)
	require.Equal(t, res.Samples, samples)

	field, err := st.LoadField(runID)
	require.NoError(t, err)
	require.Equal(t, res.Final, field)

	_, err = os.Stat(filepath.Join(st.Dir(runID), "final.png"))
	require.NoError(t, err)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	first, err := st.Save(RunMetadata{Preset: "a"}, testResult(t))
	require.NoError(t, err)
	second, err := st.Save(RunMetadata{Preset: "b"}, testResult(t))
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(st.Dir("junk")), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, first, runs[0].ID)
	require.Equal(t, second, runs[1].ID)
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	require.Error(t, err)
	_, err = st.LoadField("nope")
	require.Error(t, err)
}

func TestStoreUpdate(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{}, testResult(t))
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	meta.Wavelength = 12.5
	require.NoError(t, st.Update(meta))

	got, err := st.Load(runID)
	require.NoError(t, err)
	require.Equal(t, 12.5, got.Wavelength)

	require.Error(t, st.Update(&RunMetadata{ID: "missing"}))
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "worms"}, testResult(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var doc ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "worms", doc.Run.Preset)
	require.Len(t, doc.Samples, 2)
}
