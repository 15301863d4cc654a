// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// JobFile is the on-disk description of a batch conversion: the inputs to
// convert and where the JSON output goes. It lets a recurring conversion
// set be replayed without re-listing paths on the command line.
type JobFile struct {
	Inputs []string `yaml:"inputs"`
	OutDir string   `yaml:"out_dir,omitempty"`
	Force  bool     `yaml:"force,omitempty"`
}

// ReadJobFile loads a conversion job description from a YAML file. A job
// with no inputs is rejected.
func ReadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	if len(jf.Inputs) == 0 {
		return nil, fmt.Errorf("job file %s lists no inputs", path)
	}
	return &jf, nil
}

// WriteJobFile saves a job description to a YAML file.
func WriteJobFile(path string, jf *JobFile) error {
	data, err := yaml.Marshal(jf)
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
