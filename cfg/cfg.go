/*
 * cfg.go, part of oxdna-analysis-tools
 *
 * Copyright 2025 The oxdna-analysis-tools developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 */

//Package cfg reads the distance tool's YAML dataset descriptions.
package cfg

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Format is the kind of figure the distance tool renders.
type Format string

// The accepted figure kinds. FBoth renders the histogram and the
// trajectory plot, appending _hist and _traj to the output stem.
var (
	FHistogram  Format = "histogram"
	FTrajectory Format = "trajectory"
	FBoth       Format = "both"
)

// Dataset describes one distance measurement: a DNAnalysis input file, the
// trajectory to run it over, and the two particles to measure between.
type Dataset struct {
	// Input is the DNAnalysis input file for the simulation
	Input string `yaml:"input"`

	// Trajectory is the trajectory the distances are measured over
	Trajectory string `yaml:"trajectory"`

	// Particle1 and Particle2 are the ids of the particles to measure
	// between
	Particle1 int `yaml:"particle1"`
	Particle2 int `yaml:"particle2"`

	// Label names the dataset in plot legends. When empty it becomes
	// "<trajectory> from <particle1> to <particle2>"
	Label string `yaml:"label"`
}

// Cfg is a structure containing the parameters specified in the configuration
// file. It can be instanced through the New function or by hand. If it is
// instanced by hand, please use the Check method to check if the Cfg meets the
// requirements.
type Cfg struct {
	// Output is the figure file to write. The extension selects the image
	// format. When empty it becomes distance.png
	Output string `yaml:"output"`

	// Format selects the figure kind (histogram, trajectory or both)
	Format Format `yaml:"format"`

	// Data, when not empty, is a text file the raw distance series are
	// dumped to
	Data string `yaml:"data"`

	// Datasets are the distance measurements to take
	Datasets []Dataset `yaml:"datasets"`
}

// New opens and decodes the specified configuration file. The file must be
// a YAML file. This function automatically calls the Check method to check the
// integrity of Cfg.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Cfg
	r := bufio.NewReader(f)
	dec := yaml.NewDecoder(r)
	err = dec.Decode(&c)
	if err != nil {
		return nil, err
	}

	err = c.Check()
	if err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}

	return &c, nil
}

// Check checks if Cfg is correct. It returns an error if a field doesn't meet
// the requirements, and fills in the defaults for the empty ones.
func (c *Cfg) Check() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset is required")
	}

	if c.Output == "" {
		c.Output = "distance.png"
	}

	if c.Format == "" {
		c.Format = FHistogram
	}
	switch c.Format {
	case FHistogram, FTrajectory, FBoth:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}

	for i := range c.Datasets {
		d := &c.Datasets[i]
		if d.Input == "" {
			return fmt.Errorf("dataset %d has no input file", i)
		}
		if d.Trajectory == "" {
			return fmt.Errorf("dataset %d has no trajectory", i)
		}
		if d.Particle1 < 0 || d.Particle2 < 0 {
			return fmt.Errorf("dataset %d: particle ids cannot be negative", i)
		}
		if _, err := os.Stat(d.Input); err != nil {
			return fmt.Errorf("dataset %d: %w", i, err)
		}
		if _, err := os.Stat(d.Trajectory); err != nil {
			return fmt.Errorf("dataset %d: %w", i, err)
		}
		if d.Label == "" {
			d.Label = fmt.Sprintf("%s from %d to %d", d.Trajectory, d.Particle1, d.Particle2)
		}
	}

	return nil
}

// Labels returns the legend label of every dataset, in order.
func (c *Cfg) Labels() []string {
	l := make([]string, len(c.Datasets))
	for i, d := range c.Datasets {
		l[i] = d.Label
	}
	return l
}
