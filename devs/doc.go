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

/*Package devs measures how much a trajectory fluctuates around its mean
structure.

Every frame is superimposed on the mean structure the same way the mean
package superimposes frames on its reference. The per-frame RMSD of that
fit gives a time series of global deviation, and the squared per-nucleotide
distances to the mean accumulate into a root-mean-square fluctuation (RMSF)
profile, one value per nucleotide. Both come out in nanometers. The RMSF
profile serializes to a JSON record that structure viewers can overlay on
the mean configuration.

The trajectory can be split over several workers exactly as in the mean
package; squared sums add up and the RMSD series concatenates in chunk
order, so the parallel result matches the serial one.
*/
package devs
