/*
 * topology.go, part of oxdna-analysis-tools
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

package oxdna

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Topology holds the per-nucleotide bookkeeping of an oxDNA system: the
// strand each nucleotide belongs to, its base identity and its 3' and 5'
// neighbors (-1 for none). Nucleotide order here defines nucleotide order
// in every frame of the corresponding trajectories.
type Topology struct {
	N        int
	NStrands int
	Strand   []int
	Base     []string
	Neigh3   []int
	Neigh5   []int
}

// ReadTopology parses an oxDNA topology file: a first line with the
// number of nucleotides and the number of strands, then one line per
// nucleotide with strand id, base and 3'/5' neighbor indexes.
func ReadTopology(filename string) (*Topology, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, CError{"Failed to open topology file: " + err.Error(), []string{"ReadTopology"}}
	}
	defer f.Close()
	scan := bufio.NewScanner(f)
	if !scan.Scan() {
		return nil, CError{fmt.Sprintf("Topology %s is empty", filename), []string{"ReadTopology"}}
	}
	fields := strings.Fields(scan.Text())
	if len(fields) < 2 {
		return nil, CError{fmt.Sprintf("Malformed first line in topology %s", filename), []string{"ReadTopology"}}
	}
	top := new(Topology)
	top.N, err = strconv.Atoi(fields[0])
	if err == nil {
		top.NStrands, err = strconv.Atoi(fields[1])
	}
	if err != nil || top.N < 1 || top.NStrands < 1 {
		return nil, CError{fmt.Sprintf("Malformed first line in topology %s", filename), []string{"ReadTopology"}}
	}
	top.Strand = make([]int, 0, top.N)
	top.Base = make([]string, 0, top.N)
	top.Neigh3 = make([]int, 0, top.N)
	top.Neigh5 = make([]int, 0, top.N)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		fields = strings.Fields(line)
		if len(fields) < 4 {
			return nil, CError{fmt.Sprintf("Malformed nucleotide line in topology %s: %s", filename, line), []string{"ReadTopology"}}
		}
		strand, err1 := strconv.Atoi(fields[0])
		n3, err2 := strconv.Atoi(fields[2])
		n5, err3 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, CError{fmt.Sprintf("Malformed nucleotide line in topology %s: %s", filename, line), []string{"ReadTopology"}}
		}
		top.Strand = append(top.Strand, strand)
		top.Base = append(top.Base, fields[1])
		top.Neigh3 = append(top.Neigh3, n3)
		top.Neigh5 = append(top.Neigh5, n5)
	}
	if err := scan.Err(); err != nil {
		return nil, CError{"Failed reading topology " + filename + ": " + err.Error(), []string{"ReadTopology"}}
	}
	if len(top.Strand) != top.N {
		return nil, CError{fmt.Sprintf("Topology %s declares %d nucleotides but contains %d", filename, top.N, len(top.Strand)), []string{"ReadTopology"}}
	}
	return top, nil
}

// Indexes returns the default alignment subset, i.e. every nucleotide.
func (T *Topology) Indexes() []int {
	ret := make([]int, T.N)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

// ReadIndexes parses a file with a whitespace-separated list of
// nucleotide indexes and checks every index against [0,natoms).
func ReadIndexes(filename string, natoms int) ([]int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, CError{"Failed to open index file: " + err.Error(), []string{"ReadIndexes"}}
	}
	defer f.Close()
	scan := bufio.NewScanner(f)
	scan.Split(bufio.ScanWords)
	ret := make([]int, 0, natoms)
	for scan.Scan() {
		id, err := strconv.Atoi(scan.Text())
		if err != nil {
			return nil, CError{fmt.Sprintf("Index file %s must contain a space-separated list of integers (found %q)", filename, scan.Text()), []string{"ReadIndexes"}}
		}
		if id < 0 || id >= natoms {
			return nil, CError{fmt.Sprintf("Index %d in %s out of range for %d nucleotides", id, filename, natoms), []string{"ReadIndexes"}}
		}
		ret = append(ret, id)
	}
	if err := scan.Err(); err != nil {
		return nil, CError{"Failed reading index file " + filename + ": " + err.Error(), []string{"ReadIndexes"}}
	}
	if len(ret) == 0 {
		return nil, CError{fmt.Sprintf("Index file %s is empty", filename), []string{"ReadIndexes"}}
	}
	return ret, nil
}
