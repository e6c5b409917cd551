package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanDocument is a four-year plan produced outside this process: either a
// bare plan or the full output of a generate call, in JSON or YAML.
type PlanDocument struct {
	Goal             string         `json:"goal" yaml:"goal"`
	Plan             []YearDocument `json:"plan" yaml:"plan"`
	CompletedCourses []string       `json:"completed_courses,omitempty" yaml:"completed_courses"`
}

// YearDocument is one grade. Each course entry is null (open slot), a title,
// or a two-title list (linked semester pair).
type YearDocument struct {
	Grade   int   `json:"grade" yaml:"grade"`
	Courses []any `json:"courses" yaml:"courses"`
}

type envelope struct {
	Plan   yaml.Node `yaml:"plan"`
	Inputs struct {
		CompletedCourses []string `yaml:"completed_courses"`
	} `yaml:"inputs"`
}

// LoadDocument reads a plan document from a JSON or YAML file.
func LoadDocument(path string) (*PlanDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a plan document. JSON parses as YAML. A document
// whose "plan" key holds a mapping is treated as a generate response and
// the nested plan is used, with completed courses taken from its inputs.
func ParseDocument(data []byte) (*PlanDocument, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("parsing plan document: empty input")
	}
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing plan document: %w", err)
	}

	var doc PlanDocument
	if env.Plan.Kind == yaml.MappingNode {
		if err := env.Plan.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing nested plan: %w", err)
		}
		if len(doc.CompletedCourses) == 0 {
			doc.CompletedCourses = env.Inputs.CompletedCourses
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan document: %w", err)
	}
	return &doc, nil
}
