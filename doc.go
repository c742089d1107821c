/*
 * doc.go, part of oxdna-analysis-tools
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

/*Package oxdna is the root package of the oxdna-analysis-tools module, a
set of programs and libraries to analyze trajectories from the oxDNA
coarse-grained DNA/RNA simulation model.


	**Capabilities**

    Reads and writes oxDNA configuration/trajectory files, plain or
	compressed (gzip, zstd, flate).

    Parses oxDNA topology files and nucleotide index subsets.

    Superimposes configurations by optimal rigid-body fit (SVD-based
	least squares), and calculates RMSD between conformations.

    Computes the mean structure of a trajectory, serially or split over
	several workers, with intermediate means for convergence inspection
	(package mean).

    Computes per-nucleotide deviations (RMSF) from a mean structure
	(package devs).

    Measures inter-nucleotide distances through the external DNAnalysis
	program and plots their histograms and time series (packages
	dnanalysis, histo, oxplot).

This root package holds the shared pieces: the Frame and Topology types,
the trajectory and error interfaces and the superposition math. The
analysis programs live under cmd/.

Positions and orientations are kept in v3.Matrix sets (one vector per
row), and every transformation follows the row-vector convention: a
rotation is applied as x*Rot, with the translation added afterwards.*/
package oxdna
