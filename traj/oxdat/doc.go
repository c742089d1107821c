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

/*Package oxdat reads and writes oxDNA configuration and trajectory files.

A trajectory is a concatenation of configurations. Each configuration
starts with three header lines,

	t = T
	b = Lx Ly Lz
	E = Etot U K

followed by one line per nucleotide with at least nine whitespace-separated
numbers: the center-of-mass position, the base versor a1 and the stacking
versor a3, three components each. Configurations produced by the simulation
engine carry six more columns (velocity and angular momentum); this package
ignores them on read and writes them as zeros, as the analysis here never
uses them.

Nucleotide order within a frame is the topology order. The number of
nucleotides per frame is constant along a trajectory and is not recorded in
the file itself, which is why the functions of this package take it as an
argument.

Files whose name ends in .zst, .gz or .flate are (de)compressed on the fly
with z-standard, gzip and flate respectively; anything else is read and
written as plain text.
*/
package oxdat
