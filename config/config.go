// Package config holds the ambient run knobs that the read_isurf
// command grammar doesn't carry on the command line: transport fabric
// sizing, a scatter chunk size, and diagnostic/plot toggles. ChunkSize
// is parsed and printed only; isurf.Scatter always reads chunks of the
// isurf.ChunkSize constant. Structure
// and parsing follow InputParameters.InputParameters2D: a flat
// YAML-tagged struct, parsed with ghodss/yaml, printed with a small
// fmt.Printf report.
package config

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// RunConfig is the ~/.isurf.yaml shape, mergeable over by spf13/viper
// with command-line flags taking precedence.
type RunConfig struct {
	NumRanks    int     `yaml:"NumRanks"`
	ChunkSize   int     `yaml:"ChunkSize"`
	BoundaryTol float64 `yaml:"BoundaryTol"`
	ReportTimes bool    `yaml:"ReportTimes"`
	Profile     bool    `yaml:"Profile"`
	SamplePerf  bool    `yaml:"SamplePerf"`
	Plot        bool    `yaml:"Plot"`
}

// Default returns the configuration read_isurf runs with when no
// ~/.isurf.yaml is present and no flags override it.
func Default() *RunConfig {
	return &RunConfig{
		NumRanks:    1,
		ChunkSize:   8192,
		BoundaryTol: 1e-9,
		ReportTimes: true,
		Profile:     false,
		SamplePerf:  false,
		Plot:        false,
	}
}

// Parse unmarshals YAML config data into rc, leaving fields the
// document omits at their current (usually default) values.
func (rc *RunConfig) Parse(data []byte) error {
	return yaml.Unmarshal(data, rc)
}

// Print reports the effective configuration, the way
// InputParameters2D.Print reports its fields before a run starts.
func (rc *RunConfig) Print() {
	fmt.Printf("%-8d\t\t= NumRanks\n", rc.NumRanks)
	fmt.Printf("%-8d\t\t= ChunkSize\n", rc.ChunkSize)
	fmt.Printf("%-8.2e\t\t= BoundaryTol\n", rc.BoundaryTol)
	fmt.Printf("%-8v\t\t= ReportTimes\n", rc.ReportTimes)
	fmt.Printf("%-8v\t\t= Profile\n", rc.Profile)
	fmt.Printf("%-8v\t\t= SamplePerf\n", rc.SamplePerf)
	fmt.Printf("%-8v\t\t= Plot\n", rc.Plot)
}
