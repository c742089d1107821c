/*
 * reference.go, part of oxdna-analysis-tools
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

package mean

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
	"github.com/bensonbits/oxdna-analysis-tools/traj/oxdat"
	v3 "github.com/bensonbits/oxdna-analysis-tools/v3"
)

// Reference is the point set every frame is aligned against: the
// positions of the alignment subset in one chosen configuration, wrapped
// into the box and translated so their centroid sits at the origin. It is
// computed once per run and only ever read afterwards, so it is safe to
// share among workers.
type Reference struct {
	Conf *v3.Matrix //recentred alignment positions, one per alignment index
	ID   int        //the configuration the positions came from
	Box  []float64  //the box of that configuration
}

// PickReference selects the reference configuration for an alignment
// run: the one requested in o.Reference, or a pseudo-random one when
// that is negative. The configuration is reached by skip-reading, not by
// scanning every frame into memory.
func PickReference(trajfile string, top *oxdna.Topology, o *Options) (*Reference, error) {
	frames, err := oxdat.FrameCount(trajfile)
	if err != nil {
		return nil, errDecorate(err, "PickReference")
	}
	return pickReference(trajfile, top, o, frames)
}

func pickReference(trajfile string, top *oxdna.Topology, o *Options, frames int) (*Reference, error) {
	if frames < 1 {
		return nil, Error{fmt.Sprintf("trajectory %s contains no frames", trajfile), []string{"PickReference"}, true}
	}
	id := o.Reference
	if id < 0 {
		seed := o.Seed
		if seed < 0 {
			seed = time.Now().UnixNano()
		}
		id = rand.New(rand.NewSource(seed)).Intn(frames)
		log.Printf("INFO: using configuration %d as the alignment reference", id)
	} else if id >= frames {
		return nil, Error{fmt.Sprintf("reference configuration %d out of range: the trajectory has %d configurations", id, frames), []string{"PickReference"}, true}
	}
	traj, err := oxdat.New(trajfile, top.N)
	if err != nil {
		return nil, errDecorate(err, "PickReference")
	}
	defer traj.Close()
	if err := traj.SkipFrames(id); err != nil {
		return nil, errDecorate(err, "PickReference")
	}
	f := oxdna.NewFrame(top.N)
	if err := traj.Next(f); err != nil {
		return nil, errDecorate(err, "PickReference")
	}
	f.Inbox()
	sub := v3.Zeros(len(o.Indexes))
	sub.SomeVecs(f.Pos, o.Indexes)
	sub.SubVec(sub, v3.Centroid(sub))
	ref := &Reference{Conf: sub, ID: id, Box: make([]float64, 3)}
	copy(ref.Box, f.Box)
	return ref, nil
}
