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

//oxmean computes the mean structure of an oxDNA trajectory.
//
//	oxmean [flags] trajectory topology
//
//The trajectory is aligned frame by frame against a reference
//configuration, positions and orientation vectors are averaged, and the
//result is written as JSON, as a native configuration, or both.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/mean"
	"github.com/bensonbits/oxdna-analysis-tools/traj/oxdat"
)

func main() {
	log.SetFlags(0)
	p := flag.Int("p", 1, "how many cores to use")
	o := flag.String("o", "", "the filename to save the mean structure to")
	f := flag.String("f", "", "output format for the mean file: json, oxDNA or both")
	i := flag.String("i", "", "align on a subset of particles, from a space-separated list in the provided file")
	a := flag.Int("a", -1, "the id of the configuration to align to; negative picks one at random")
	d := flag.String("d", "", "immediately run the deviations tool, saving its output to the provided file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: oxmean [flags] trajectory topology\nComputes the mean structure of a trajectory file.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	trajfile := flag.Arg(0)
	topfile := flag.Arg(1)

	outjson := false
	outoxdna := false
	switch *f {
	case "":
		log.Printf("INFO: No output format specified, defaulting to oxDNA")
		outoxdna = true
	case "json":
		outjson = true
	case "oxDNA", "oxdna":
		outoxdna = true
	case "both":
		outjson = true
		outoxdna = true
	default:
		log.Fatalf("ERROR: unrecognized output format\nAccepted formats are \"json\", \"oxDNA/oxdna\", and \"both\"")
	}

	outfile := *o
	if outfile == "" {
		var ext string
		switch {
		case outjson && outoxdna:
			ext = ".json/.dat"
		case outjson:
			ext = ".json"
		default:
			ext = ".dat"
		}
		outfile = "mean" + ext
		log.Printf("INFO: No outfile name provided, defaulting to %q", outfile)
	}

	top, err := oxdna.ReadTopology(topfile)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	opts := mean.DefaultOptions(top)
	opts.Workers = *p
	opts.Reference = *a
	if *i != "" {
		idx, err := oxdna.ReadIndexes(*i, top.N)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		opts.Indexes = idx
	}

	res, err := mean.Compute(trajfile, top, opts)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	//the deviations tool reads the mean as JSON, so chaining into it
	//forces the JSON output even when only the native format was asked for
	var jsonfile string
	if outjson || *d != "" {
		jsonfile = outfile
		if outoxdna {
			jsonfile = stem(outfile) + ".json"
		}
		log.Printf("INFO: Writing mean configuration to %s", jsonfile)
		if err := res.WriteJSON(jsonfile); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	}
	if outoxdna {
		outname := outfile
		if outjson {
			outname = stem(outfile) + ".dat"
		}
		log.Printf("INFO: Writing mean configuration to %s", outname)
		if err := writeDat(res, top.N, outname); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	}

	if *d != "" {
		log.Printf("INFO: launching the deviations tool")
		args := make([]string, 0, 7)
		if *p > 1 {
			args = append(args, "-p", strconv.Itoa(*p))
		}
		args = append(args, "-o", *d, jsonfile, trajfile, topfile)
		command := exec.Command(deviationsCommand(), args...)
		command.Stdout = os.Stdout
		command.Stderr = os.Stderr
		runErr := command.Run()
		if !outjson {
			log.Printf("INFO: deleting %s", jsonfile)
			os.Remove(jsonfile)
		}
		if runErr != nil {
			log.Fatalf("ERROR: the deviations run failed: %v", runErr)
		}
	}
}

//stem cuts the name at its first dot. Twin outputs share the stem, so
//-o mean.json with -f both writes mean.json and mean.dat.
func stem(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

func writeDat(res *mean.Result, natoms int, name string) error {
	w, err := oxdat.NewWriter(name, natoms)
	if err != nil {
		return err
	}
	if err := w.WNext(res.Frame()); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

//the deviations tool normally sits in the same directory as this one
func deviationsCommand() string {
	self, err := os.Executable()
	if err == nil {
		cand := filepath.Join(filepath.Dir(self), "oxdeviations")
		if _, err := os.Stat(cand); err == nil {
			return cand
		}
	}
	return "oxdeviations"
}
