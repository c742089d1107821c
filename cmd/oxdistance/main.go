/*
 * main.go, part of oxdna-analysis-tools
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

//oxdistance measures the distance between pairs of particles over
//trajectories and plots the results.
//
//	oxdistance [flags] config.yml
//	oxdistance [flags] -i input,trajectory,particle1,particle2 [-i ...]
//
//Each dataset names a simulation input file, a trajectory and two
//particle ids; the DNAnalysis engine does the measuring and this tool
//renders overlaid histograms, distance-against-step plots, or both, and
//prints each dataset's mean distance and standard deviation in nm.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/bensonbits/oxdna-analysis-tools/cfg"
	"github.com/bensonbits/oxdna-analysis-tools/dnanalysis"
	"github.com/bensonbits/oxdna-analysis-tools/histo"
	"github.com/bensonbits/oxdna-analysis-tools/oxplot"
)

//datasets collects repeated -i tuples.
type datasets []cfg.Dataset

func (d *datasets) String() string {
	s := make([]string, len(*d))
	for i, v := range *d {
		s[i] = fmt.Sprintf("%s,%s,%d,%d", v.Input, v.Trajectory, v.Particle1, v.Particle2)
	}
	return strings.Join(s, " ")
}

func (d *datasets) Set(v string) error {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want input,trajectory,particle1,particle2, got %q", v)
	}
	p1, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return fmt.Errorf("particle1 in %q: %w", v, err)
	}
	p2, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		return fmt.Errorf("particle2 in %q: %w", v, err)
	}
	*d = append(*d, cfg.Dataset{
		Input:      strings.TrimSpace(parts[0]),
		Trajectory: strings.TrimSpace(parts[1]),
		Particle1:  p1,
		Particle2:  p2,
	})
	return nil
}

func main() {
	log.SetFlags(0)
	var tuples datasets
	flag.Var(&tuples, "i", "a dataset as a comma-separated input,trajectory,particle1,particle2 tuple (repeatable)")
	f := flag.String("f", "", "graph format: histogram, trajectory or both")
	o := flag.String("o", "", "the filename to save the plot to")
	d := flag.String("d", "", "dump the measured distances to the provided text file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: oxdistance [flags] config.yml\n       oxdistance [flags] -i input,trajectory,particle1,particle2 [-i ...]\nMeasures distances between particle pairs over trajectories.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var c *cfg.Cfg
	var err error
	switch {
	case flag.NArg() == 1 && len(tuples) == 0:
		c, err = cfg.New(flag.Arg(0))
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	case flag.NArg() == 0 && len(tuples) > 0:
		switch cfg.Format(*f) {
		case "", cfg.FHistogram, cfg.FTrajectory, cfg.FBoth:
		default:
			log.Fatalf("ERROR: unrecognized graph format\nAccepted formats are \"histogram\", \"trajectory\", and \"both\"")
		}
		if *f == "" {
			log.Printf("INFO: No graph format specified, defaulting to histogram")
		}
		c = &cfg.Cfg{Output: *o, Format: cfg.Format(*f), Data: *d, Datasets: tuples}
		if err := c.Check(); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	all := make([]*dnanalysis.Series, 0, len(c.Datasets))
	series := make([][]float64, 0, len(c.Datasets))
	for _, ds := range c.Datasets {
		O := dnanalysis.NewHandle()
		if err := O.BuildInput(ds.Input, ds.Trajectory, ds.Particle1, ds.Particle2); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		S, err := O.Run()
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		all = append(all, S)
		series = append(series, S.Distances)
	}

	if c.Data != "" {
		if len(all) > 1 {
			for i, S := range all {
				writeDump(insertTag(c.Data, strconv.Itoa(i)), S)
			}
		} else {
			writeDump(c.Data, all[0])
		}
	}

	for _, s := range series {
		fmt.Println("mean_distance:", stat.Mean(s, nil), "stdev:", stat.PopStdDev(s, nil))
	}

	labels := c.Labels()
	switch c.Format {
	case cfg.FHistogram:
		plotHistogram(series, labels, c.Output)
	case cfg.FTrajectory:
		plotLine(series, labels, c.Output)
	case cfg.FBoth:
		plotHistogram(series, labels, insertTag(c.Output, "_hist"))
		plotLine(series, labels, insertTag(c.Output, "_traj"))
	}
}

func plotHistogram(series [][]float64, labels []string, file string) {
	S := histo.NewSet(len(series), histo.AutoDividers(series...))
	S.Fill()
	for i, s := range series {
		S.NewHisto(i, nil, s, i)
	}
	S.NormalizeAll()
	if err := oxplot.Histogram(S, labels, file); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func plotLine(series [][]float64, labels []string, file string) {
	if err := oxplot.Line(series, labels, file); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func writeDump(name string, S *dnanalysis.Series) {
	log.Printf("INFO: Writing DNAnalysis output to file %s", name)
	f, err := os.Create(name)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err := S.Dump(f); err != nil {
		f.Close()
		log.Fatalf("ERROR: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

//insertTag slips a tag in before the first dot, distance.png becoming
//distance_hist.png.
func insertTag(name, tag string) string {
	i := strings.Index(name, ".")
	if i < 0 {
		return name + tag
	}
	return name[:i] + tag + name[i:]
}
