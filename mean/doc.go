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

/*Package mean computes the time-averaged structure of an oxDNA trajectory.

Every frame is rigidly superimposed on a common reference configuration
(chosen at random or given by the caller), and the superimposed positions
and orientation vectors are summed frame by frame. The mean is the sum
over the processed frames, with the mean orientation vectors renormalized
to unit length. Along the way the running position mean can be snapshotted
periodically, which gives a cheap convergence diagnostic: when the
intermediate means stop drifting, the average has decorrelated from the
starting configuration.

The computation can be split over several workers, each owning its own
reader over a contiguous chunk of frames and its own accumulator. The
partial sums combine by plain addition, so the parallel result matches the
serial one up to floating-point summation order. Intermediate snapshots
are only collected in the single-worker case, where frame boundaries make
them comparable.
*/
package mean
