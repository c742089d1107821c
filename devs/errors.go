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

package devs

import (
	"fmt"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
)

// errDecorate asserts that the error implements oxdna.Error and
// decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(oxdna.Error) //the errors in this package all implement it
	err2.Decorate(caller)
	return err2
}

// Error is the general type for deviation-analysis errors. It fulfills
// oxdna.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("devs: %s", err.message)
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
func (err Error) Critical() bool { return err.critical }

// abortError reports that a worker was stopped because a sibling
// failed, rather than failing itself.
type abortError struct{}

func (err abortError) Error() string { return "devs: accumulation aborted" }

func (err abortError) Decorate(deco string) []string { return nil }

func (err abortError) Critical() bool { return false }

func aborted(err error) bool {
	_, ok := err.(abortError)
	return ok
}
