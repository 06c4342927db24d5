package plan

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a plan from YAML/JSON bytes and normalizes it.
func ParseYAML(data []byte) (Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Plan{}, fmt.Errorf("plan: payload is empty")
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("plan: decode: %w", err)
	}
	return p.Normalized()
}

// LoadReader reads plan data from an io.Reader.
func LoadReader(r io.Reader) (Plan, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: read: %w", err)
	}
	return ParseYAML(content)
}

// LoadFile loads a plan from an explicit file path.
func LoadFile(path string) (Plan, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: read %s: %w", path, err)
	}
	p, parseErr := ParseYAML(content)
	if parseErr != nil {
		return Plan{}, fmt.Errorf("plan: %s: %w", path, parseErr)
	}
	return p, nil
}

// ParseSimulationYAML decodes a simulation input from YAML/JSON bytes. An
// empty payload is a valid empty input: every activity then sources its item
// counts from its own time fields.
func ParseSimulationYAML(data []byte) (SimulationInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return SimulationInput{}, nil
	}
	var input SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return SimulationInput{}, fmt.Errorf("plan: decode simulation input: %w", err)
	}
	return input, nil
}

// LoadSimulationReader reads simulation input data from an io.Reader.
func LoadSimulationReader(r io.Reader) (SimulationInput, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return SimulationInput{}, fmt.Errorf("plan: read simulation input: %w", err)
	}
	return ParseSimulationYAML(content)
}

// LoadSimulationFile loads a simulation input from an explicit file path.
func LoadSimulationFile(path string) (SimulationInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SimulationInput{}, fmt.Errorf("plan: read %s: %w", path, err)
	}
	input, parseErr := ParseSimulationYAML(content)
	if parseErr != nil {
		return SimulationInput{}, fmt.Errorf("plan: %s: %w", path, parseErr)
	}
	return input, nil
}
