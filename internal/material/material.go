// Package material reads material property files and turns them into the
// immutable fatigue.Material used by every calculation.
package material

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"Fatigue/internal/fatigue"
	"gopkg.in/yaml.v3"
)

// Spec is a loaded material file.
type Spec struct {
	Name       string           `json:"name"`
	Properties fatigue.Material `json:"properties"`
}

// document mirrors the file layout:
//
//	material:
//	  name: Al 6061-T6
//	  strength: {ultimate_strength: 310, yield_strength: 276}
//	  fatigue: {fatigue_strength_coefficient: ..., ...}
type document struct {
	Material map[string]any `yaml:"material"`
}

func LoadFile(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: open material file: %v", fatigue.ErrConfiguration, err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (Spec, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Spec{}, fmt.Errorf("%w: parse material yaml: %v", fatigue.ErrConfiguration, err)
	}
	if doc.Material == nil {
		return Spec{}, fmt.Errorf("%w: missing material section", fatigue.ErrConfiguration)
	}

	props, err := fatigue.LoadMaterial(doc.Material)
	if err != nil {
		return Spec{}, err
	}
	name, _ := doc.Material["name"].(string)
	return Spec{Name: name, Properties: props}, nil
}

func Parse(data []byte) (Spec, error) {
	return Load(bytes.NewReader(data))
}
