package script

import (
	"encoding/json"
	"fmt"
	"os"
)

// BiasMap maps a 2-letter language code to the exact strings to suppress
// from rendered output (recurring transcription artifacts).
type BiasMap map[string][]string

// ForLanguage returns the bias list for a language, or nil. Safe on a
// nil map.
func (b BiasMap) ForLanguage(lang string) []string {
	if b == nil {
		return nil
	}
	return b[lang]
}

// LoadBiasFile reads a JSON bias file. A missing file is not an error;
// it yields a nil map and no filtering.
func LoadBiasFile(path string) (BiasMap, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bias file: %w", err)
	}

	var biases BiasMap
	if err := json.Unmarshal(data, &biases); err != nil {
		return nil, fmt.Errorf("parse bias file %s: %w", path, err)
	}
	return biases, nil
}
