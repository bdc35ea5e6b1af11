package params

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a resolved parameter set from a YAML file. Fields absent from
// the file keep their built-in defaults.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading params file: %w", err)
	}
	set := DefaultSet()
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("parsing params YAML: %w", err)
	}
	return set, nil
}

// LoadProjectFile loads a project from a directory, looking for project.yaml.
func LoadProjectFile(projectDir string) (*Project, error) {
	return LoadProject(filepath.Join(projectDir, "project.yaml"))
}

// Project is the on-disk bundle the CLI consumes: one resolved parameter
// layer plus the lots to evaluate, each with optional overrides.
type Project struct {
	Params Set       `yaml:"params" json:"params"`
	Lots   []LotSpec `yaml:"lots" json:"lots"`
}

// LotSpec is the raw per-lot input: id, boundary ring, role-tagged faces,
// and an optional override layer in the same shape as the params section.
type LotSpec struct {
	ID        string       `yaml:"id" json:"id"`
	Polygon   [][2]float64 `yaml:"polygon" json:"polygon"`
	Faces     []FaceSpec   `yaml:"faces" json:"faces"`
	Overrides yaml.Node    `yaml:"overrides" json:"-"`
}

// FaceSpec is one boundary face with its role tag.
type FaceSpec struct {
	Role string     `yaml:"role" json:"role"`
	From [2]float64 `yaml:"from" json:"from"`
	To   [2]float64 `yaml:"to" json:"to"`
}

// LoadProject reads a project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	proj := &Project{Params: DefaultSet()}
	if err := yaml.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return proj, nil
}

// Resolve returns the parameter set for one lot: the project layer with the
// lot's overrides decoded on top. Decoding a yaml.Node into a populated
// struct only touches the fields present in the node, which gives the
// layered-merge semantics without a hand-written deep merge. The lot id is
// always stamped from the lot spec.
func (p *Project) Resolve(lot LotSpec) (Set, error) {
	set := p.Params
	if !lot.Overrides.IsZero() {
		if err := lot.Overrides.Decode(&set); err != nil {
			return Set{}, fmt.Errorf("lot %s: decoding overrides: %w", lot.ID, err)
		}
	}
	set.Zoning.LotID = lot.ID
	return set, nil
}
