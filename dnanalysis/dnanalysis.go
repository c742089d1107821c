/*
 * dnanalysis.go, part of oxdna-analysis-tools
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

//In order to use this package you need the DNAnalysis program, which is
//distributed with the oxDNA simulation engine.

//Package dnanalysis drives the DNAnalysis observable engine to measure the
//distance between two particles over a trajectory. The engine does the
//per-configuration work in C++; this package builds the observable,
//launches the program and turns its output into distance series in nm.
package dnanalysis

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
)

// DNAnalysis is the name of the wrapped program.
const DNAnalysis = "DNAnalysis"

//1 simulation unit is 0.85 nm
const nmPerSimUnit = 0.85

// Series is the outcome of one distance run: the simulation step ordinals
// and the distances measured at them, already converted to nm.
type Series struct {
	Steps     []float64
	Distances []float64
}

// Dump writes the series to w as one "step distance" line per sample.
func (S *Series) Dump(w io.Writer) error {
	for i, v := range S.Distances {
		_, err := fmt.Fprintf(w, "%g %g\n", S.Steps[i], v)
		if err != nil {
			return err
		}
	}
	return nil
}

// Handle wraps one DNAnalysis invocation. Zero value is not usable; get one
// from NewHandle and point it to an input file and trajectory with BuildInput.
type Handle struct {
	command   string
	inputname string
	traj      string
	obs       string
}

func NewHandle() *Handle {
	run := new(Handle)
	run.SetDefaults()
	return run
}

//Handle methods

func (O *Handle) Command() string {
	return O.command
}

func (O *Handle) SetCommand(name string) {
	O.command = name
}

func (O *Handle) SetDefaults() {
	O.command = DNAnalysis
}

// BuildInput prepares a distance measurement between the particles p1 and p2
// over the given trajectory, using the simulation input file for the engine's
// own settings. Nothing is written to disk: the observable rides on the
// command line, printing a step column and a PBC-aware distance column to
// stdout for every configuration.
func (O *Handle) BuildInput(inputfile, traj string, p1, p2 int) error {
	if inputfile == "" || traj == "" {
		return Error{ErrNotRunning, DNAnalysis, inputfile, "input file and trajectory are both needed", []string{"BuildInput"}, true}
	}
	if p1 < 0 || p2 < 0 {
		return Error{ErrNotRunning, DNAnalysis, inputfile, "particle ids cannot be negative", []string{"BuildInput"}, true}
	}
	O.inputname = inputfile
	O.traj = traj
	O.obs = "analysis_data_output_1 = { \n name = stdout \n print_every = 1 \n col_1 = { \n type=step \n} \n col_2 = { \n type=distance \n particle_1=" +
		strconv.Itoa(p1) + "\n particle_2=" + strconv.Itoa(p2) + "\n PBC=true \n} \n}"
	return nil
}

// Run launches the program and waits for it. The observable text must be a
// single argument to the engine, so the command runs directly, without a
// shell. A run where the engine printed CRITICAL or ERROR lines fails even
// when the exit status was zero.
func (O *Handle) Run() (*Series, error) {
	if O.obs == "" {
		return nil, Error{ErrNotRunning, DNAnalysis, O.inputname, "BuildInput must come first", []string{"Run"}, true}
	}
	log.Printf("INFO: running DNAnalysis on file %s...", O.traj)
	var out, errout bytes.Buffer
	command := exec.Command(O.command, O.inputname, "trajectory_file="+O.traj, O.obs)
	command.Stdout = &out
	command.Stderr = &errout
	err := command.Run()
	if err != nil {
		return nil, Error{ErrNotRunning, DNAnalysis, O.inputname, err.Error() + ": " + errout.String(), []string{"exec.Run", "Run"}, true}
	}
	if said := engineComplaints(errout.String()); said != "" {
		return nil, Error{ErrProgramSaid, DNAnalysis, O.inputname, said, []string{"Run"}, true}
	}
	s, err := parseDistances(out.String())
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	return s, nil
}

// engineComplaints returns the CRITICAL and ERROR lines of the engine's
// stderr, or an empty string when there are none.
func engineComplaints(stderr string) string {
	var said []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, "CRITICAL") || strings.Contains(line, "ERROR") {
			said = append(said, line)
		}
	}
	return strings.Join(said, "\n")
}

// parseDistances reads the engine's two-column stdout. Distances come in
// simulation units and leave in nm.
func parseDistances(out string) (*Series, error) {
	S := new(Series)
	scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(out)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, Error{ErrNoOutput, DNAnalysis, "", "short line: " + scanner.Text(), []string{"parseDistances"}, true}
		}
		step, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, Error{ErrNoOutput, DNAnalysis, "", err.Error(), []string{"strconv.ParseFloat", "parseDistances"}, true}
		}
		d, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, Error{ErrNoOutput, DNAnalysis, "", err.Error(), []string{"strconv.ParseFloat", "parseDistances"}, true}
		}
		S.Steps = append(S.Steps, step)
		S.Distances = append(S.Distances, d*nmPerSimUnit)
	}
	if len(S.Distances) == 0 {
		return nil, Error{ErrNoOutput, DNAnalysis, "", "empty output", []string{"parseDistances"}, true}
	}
	return S, nil
}

// errDecorate asserts that the error implements oxdna.Error and
// decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(oxdna.Error) //the errors in this package all implement it
	err2.Decorate(caller)
	return err2
}
