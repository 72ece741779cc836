package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/export"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	fieldFile    = "final.csv"
	imageFile    = "final.png"

	imageScale = 4
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Size       int                `json:"size"`
	Params     dynamo.Params      `json:"params"`
	Steps      int                `json:"steps"`
	Status     string             `json:"status"`
	ElapsedMS  int64              `json:"elapsed_ms"`
	Metrics    map[string]float64 `json:"metrics"`
	Wavelength float64            `json:"wavelength,omitempty"`
}

// Dir is the directory holding one run's artifacts.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// Save writes a finished run. meta.ID, Timestamp, Steps, Status, ElapsedMS
// and Metrics are filled from res.
func (s *Store) Save(meta RunMetadata, res *experiment.Result) (string, error) {
	now := time.Now()
	prefix := meta.Preset
	if prefix == "" {
		prefix = "run"
	}
	runID := fmt.Sprintf("%s_%d", prefix, now.UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = res.Steps
	meta.Status = res.Status.String()
	meta.ElapsedMS = res.Elapsed.Milliseconds()
	meta.Metrics = res.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), res.Samples); err != nil {
		return "", err
	}
	if res.Final != nil {
		if err := writeField(filepath.Join(runDir, fieldFile), res.Final); err != nil {
			return "", err
		}
		if err := export.SavePNG(filepath.Join(runDir, imageFile), res.Final, imageScale); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// Update rewrites the metadata of an existing run.
func (s *Store) Update(meta *RunMetadata) error {
	if _, err := os.Stat(s.Dir(meta.ID)); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.Dir(meta.ID), metadataFile), meta)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var seriesHeader = []string{"t", "min_u", "max_u", "mean_u", "min_v", "max_v", "mean_v"}

func writeSeries(path string, samples []experiment.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.T),
			strconv.FormatFloat(s.MinU, 'g', -1, 64),
			strconv.FormatFloat(s.MaxU, 'g', -1, 64),
			strconv.FormatFloat(s.MeanU, 'g', -1, 64),
			strconv.FormatFloat(s.MinV, 'g', -1, 64),
			strconv.FormatFloat(s.MaxV, 'g', -1, 64),
			strconv.FormatFloat(s.MeanV, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeField(path string, field *dynamo.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteFieldCSV(f, field); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(a, b int) bool {
		return runs[a].Timestamp.Before(runs[b].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads the sampled statistics back. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]experiment.Sample, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(seriesHeader) {
			continue
		}

		t, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals := make([]float64, 6)
		ok := true
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, experiment.Sample{
			T: t,
			Stats: metrics.Stats{
				MinU: vals[0], MaxU: vals[1], MeanU: vals[2],
				MinV: vals[3], MaxV: vals[4], MeanV: vals[5],
			},
		})
	}

	return samples, nil
}

// LoadField reads the last committed field of a run.
func (s *Store) LoadField(runID string) (*dynamo.Field, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), fieldFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadFieldCSV(f)
}
