/*
 * errors.go, part of oxdna-analysis-tools
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

package dnanalysis

import "fmt"

// Messages for the Error type.
const (
	ErrNotRunning  = "Program could not be run"
	ErrNoOutput    = "Program produced no parseable distance output"
	ErrProgramSaid = "Program reported errors"
)

// Error implements the oxdna.Error interface for failures around the wrapped
// program. The err field carries whatever the program or the OS had to say.
type Error struct {
	message   string
	program   string
	inputname string
	err       string
	deco      []string
	critical  bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dnanalysis: %s. Program: %s, Input: %s. Underlying: %s", err.message, err.program, err.inputname, err.err)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//The receiver is not a pointer, but err.deco is a slice, so the
	//appended data is still visible through the returned value.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool {
	return err.critical
}
