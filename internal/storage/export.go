package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

type ExportData struct {
	Run     RunMetadata        `json:"run"`
	Samples []wavefield.Sample `json:"samples"`
}

func ExportJSON(path string, meta RunMetadata, samples []wavefield.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, samples)
}

// WriteJSON is ExportJSON onto an arbitrary writer, e.g. os.Stdout.
func WriteJSON(w io.Writer, meta RunMetadata, samples []wavefield.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Samples: samples})
}
