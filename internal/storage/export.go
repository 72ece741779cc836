package storage

import (
	"encoding/json"
	"io"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/experiment"
)

type ExportData struct {
	Run     *RunMetadata        `json:"run"`
	Samples []experiment.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and sampled series as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Samples: samples})
}
