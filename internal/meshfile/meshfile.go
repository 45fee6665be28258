// Package meshfile reads dataset descriptions written in YAML or TOML.
//
// A description names the dataset kind and lists its geometry and data
// arrays:
//
//	kind: unstructured
//	points: {type: float32, components: 3, values: [0, 0, 0, 1, 0, 0, 0, 1, 0]}
//	cells:
//	  types: [triangle]
//	  connectivity: [0, 1, 2]
//	point_data:
//	  - {name: temperature, type: float64, values: [280, 290, 300]}
//
// Array values are written as numbers and converted to the array type.
package meshfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a description file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is a decoded description.
type File struct {
	Kind string `yaml:"kind" toml:"kind"`

	// uniform
	Dims    []int     `yaml:"dims,omitempty" toml:"dims,omitempty"`
	Origin  []float64 `yaml:"origin,omitempty" toml:"origin,omitempty"`
	Spacing []float64 `yaml:"spacing,omitempty" toml:"spacing,omitempty"`

	// rectilinear
	X *Array `yaml:"x,omitempty" toml:"x,omitempty"`
	Y *Array `yaml:"y,omitempty" toml:"y,omitempty"`
	Z *Array `yaml:"z,omitempty" toml:"z,omitempty"`

	// structured and unstructured
	Points *Array `yaml:"points,omitempty" toml:"points,omitempty"`
	Cells  *Cells `yaml:"cells,omitempty" toml:"cells,omitempty"`

	PointData []Array `yaml:"point_data,omitempty" toml:"point_data,omitempty"`
	CellData  []Array `yaml:"cell_data,omitempty" toml:"cell_data,omitempty"`
	FieldData []Array `yaml:"field_data,omitempty" toml:"field_data,omitempty"`

	// table
	Columns []Array `yaml:"columns,omitempty" toml:"columns,omitempty"`
}

// Array describes one data array.
type Array struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	// Type is a scalar type name such as "float32". Defaults to float64.
	Type string `yaml:"type,omitempty" toml:"type,omitempty"`
	// Size overrides the element width. An array whose size differs from
	// the natural width of its type carries zeroed values.
	Size       int       `yaml:"size,omitempty" toml:"size,omitempty"`
	Components int       `yaml:"components,omitempty" toml:"components,omitempty"`
	Layout     string    `yaml:"layout,omitempty" toml:"layout,omitempty"`
	Values     []float64 `yaml:"values" toml:"values"`
}

// Cells describes the cells of an unstructured grid.
type Cells struct {
	Types        []string `yaml:"types" toml:"types"`
	Connectivity []int64  `yaml:"connectivity" toml:"connectivity"`
	// Offsets has one entry per cell plus the end offset. When omitted it
	// is derived from the cell types.
	Offsets []int64 `yaml:"offsets,omitempty" toml:"offsets,omitempty"`
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf("unknown description format for %s", path)
	}
}

// Decode parses a description.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML description")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML description")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown keys in TOML description: %v", undecoded)
		}
	default:
		return nil, errors.Errorf("unsupported description format %q", format)
	}
	return &f, nil
}

// ReadFile reads and decodes the description at path.
func ReadFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}
