package experiment

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"
)

// SaveResults writes res as JSON to path, replacing any existing file.
func SaveResults(res *Result, path string) error {
	data, err := sonnet.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

// LoadResults reads a results file written by SaveResults.
// Final grids are not stored, so Spins is nil on every trial.
func LoadResults(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results %s: %w", path, err)
	}
	var res Result
	if err := sonnet.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding results %s: %w", path, err)
	}
	return &res, nil
}
