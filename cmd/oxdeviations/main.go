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

//oxdeviations measures how much a trajectory fluctuates around its mean
//structure.
//
//	oxdeviations [flags] mean.json trajectory topology
//
//Every configuration is aligned against the mean structure computed by
//oxmean; the tool reports the per-particle RMSF profile as JSON and
//prints the mean and standard deviation of the per-configuration RMSD,
//all in nm.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/gonum/stat"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/devs"
	"github.com/bensonbits/oxdna-analysis-tools/mean"
)

func main() {
	log.SetFlags(0)
	p := flag.Int("p", 1, "how many cores to use")
	o := flag.String("o", "devs.json", "the filename to save the deviations to")
	i := flag.String("i", "", "align on a subset of particles, from a space-separated list in the provided file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: oxdeviations [flags] mean.json trajectory topology\nComputes the RMSF profile of a trajectory around its mean structure.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}
	meanfile := flag.Arg(0)
	trajfile := flag.Arg(1)
	topfile := flag.Arg(2)

	top, err := oxdna.ReadTopology(topfile)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	r, err := mean.ReadResult(meanfile)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	opts := devs.DefaultOptions(top)
	opts.Workers = *p
	if *i != "" {
		idx, err := oxdna.ReadIndexes(*i, top.N)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		opts.Indexes = idx
	}

	prof, err := devs.Compute(r, trajfile, top, opts)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	log.Printf("INFO: Writing deviations to %s", *o)
	if err := prof.WriteJSON(*o); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	fmt.Println("mean_RMSD:", stat.Mean(prof.RMSD, nil), "stdev:", stat.PopStdDev(prof.RMSD, nil))
}
