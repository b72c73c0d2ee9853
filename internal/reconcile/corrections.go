package reconcile

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Correction is one hand-maintained mapping override for an ambiguous
// external filename. FormID points at a canonical form id; Zh and En
// optionally replace that form's display names for the timeline entry.
type Correction struct {
	FormID string `yaml:"form_id"`
	Zh     string `yaml:"zh,omitempty"`
	En     string `yaml:"en,omitempty"`
}

// LoadCorrections reads the manual correction list, keyed by the external
// "<num>-<suffix>" filename stem. A missing file is not an error; the
// heuristics simply run uncorrected.
func LoadCorrections(path string) (map[string]Correction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "reconcile: read corrections %s", path)
	}

	var corrections map[string]Correction
	if err := yaml.Unmarshal(data, &corrections); err != nil {
		return nil, eris.Wrapf(err, "reconcile: parse corrections %s", path)
	}
	return corrections, nil
}

// LoadExternalEntries reads the external depositable listing from a JSON
// file of {name, src} rows.
func LoadExternalEntries(path string) ([]ExternalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reconcile: read external listing %s", path)
	}
	var entries []ExternalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrapf(err, "reconcile: parse external listing %s", path)
	}
	return entries, nil
}
