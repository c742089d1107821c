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

/*Package v3 implements a Matrix type representing a set of 3D vectors, one
per row (i.e. an Nx3 matrix). It is used to hold the positions and the
orientation vectors of sets of nucleotides. It is based on gonum's
(gonum.org/v1/gonum/mat) Dense type, with restrictions following from the
fixed number of columns, plus the few extra operations the analysis code
needs. Shape violations panic, as they are programming errors rather than
runtime conditions. Views share backing storage with the viewed matrix.
*/
package v3
