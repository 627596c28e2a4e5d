package deal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a dataset of deals from a JSON or YAML file. The format is
// chosen by extension (.yaml/.yml, anything else is JSON). Every deal is
// validated and ids must be unique.
func LoadFile(path string) ([]Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetRead, path, err)
	}

	var deals []Deal

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &deals)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&deals)
	}

	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDatasetFormat, path, err)
	}

	validateErr := ValidateAll(deals)
	if validateErr != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDatasetFormat, path, validateErr)
	}

	return deals, nil
}
