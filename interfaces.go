/*
 * interfaces.go, part of oxdna-analysis-tools
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

// Traj is the interface for a sequential trajectory source. A Traj yields
// one Frame per call, in file order, and signals the normal end of the
// trajectory with an error satisfying LastFrameError.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into f, or discards the frame if f is nil.
	Next(f *Frame) error

	//Natoms returns the number of nucleotides per frame.
	Natoms() int
}

// Error is the interface for errors that all packages in this module
// implement. The Decorate method adds information to the error as it is
// passed up, without changing its type or wrapping it in something else.
// Each call returns the current decoration slice; passing an empty string
// only retrieves it. The slice should contain the names of the functions
// in the calling stack, each optionally followed by extra information, in
// the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors occurring while reading or
// writing trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError is a TrajError that marks the normal end of a
// trajectory, so it can be filtered in a type switch looking for this
// interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just separates this interface from other TrajError's
}
