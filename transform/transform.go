// Package transform describes one analysis run as data: which plugin to
// run, which output to collect, parameter settings and step/block
// overrides. Transforms are written in YAML, e.g.:
//
//	plugin: example:zerocrossing
//	output: counts
//	parameters:
//	  threshold: 0.25
//	stepSize: 512
//	blockSize: 1024
//
// Zero step/block means "use the plugin's preference".
package transform

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transform is a declarative analysis run.
type Transform struct {
	Plugin     string             `yaml:"plugin"`
	Output     string             `yaml:"output,omitempty"`
	Parameters map[string]float32 `yaml:"parameters,omitempty"`
	StepSize   int                `yaml:"stepSize,omitempty"`
	BlockSize  int                `yaml:"blockSize,omitempty"`
}

// Parse decodes and validates a YAML transform.
func Parse(data []byte) (*Transform, error) {
	var t Transform
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads and parses a transform file.
func Load(path string) (*Transform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return Parse(data)
}

// Validate checks internal consistency. Step and block sizes of zero are
// allowed (plugin preference applies); negative sizes and a step larger
// than an explicit block are not.
func (t *Transform) Validate() error {
	if t.Plugin == "" {
		return errors.New("transform: plugin key is required")
	}
	if t.StepSize < 0 || t.BlockSize < 0 {
		return errors.New("transform: step and block sizes cannot be negative")
	}
	if t.StepSize > 0 && t.BlockSize > 0 && t.StepSize > t.BlockSize {
		return fmt.Errorf("transform: stepSize %d exceeds blockSize %d", t.StepSize, t.BlockSize)
	}
	return nil
}

// Encode renders the transform back to YAML.
func (t *Transform) Encode() ([]byte, error) {
	return yaml.Marshal(t)
}
