/*
 * oxdat.go, part of oxdna-analysis-tools
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

package oxdat

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	oxdna "github.com/bensonbits/oxdna-analysis-tools"
)

// Reader reads oxDNA configuration/trajectory files, sequentially, one
// frame per call. Files with a .zst, .gz or .flate suffix are
// decompressed transparently.
type Reader struct {
	f        *os.File
	z        io.ReadCloser //nil for uncompressed files
	h        *bufio.Reader
	natoms   int
	filename string
	readable bool
}

// zstd.Decoder.Close does not return an error, so it does not satisfy
// io.ReadCloser on its own.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func decompressor(name string, f io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{r}, nil
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(f)
	case strings.HasSuffix(name, ".flate"):
		return flate.NewReader(f), nil
	}
	return nil, nil
}

// New opens an oxDNA configuration or trajectory file holding natoms
// nucleotides per frame and returns a handle ready to be read.
func New(name string, natoms int) (*Reader, error) {
	if natoms < 1 {
		return nil, Error{fmt.Sprintf("can't read frames of %d nucleotides", natoms), name, []string{"New"}, true}
	}
	R := new(Reader)
	R.filename = name
	R.natoms = natoms
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"New"}, true}
	}
	R.z, err = decompressor(name, bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, Error{"Can't set up decompression: " + err.Error(), name, []string{"New"}, true}
	}
	if R.z != nil {
		R.h = bufio.NewReader(R.z)
	} else {
		R.h = bufio.NewReader(R.f)
	}
	R.readable = true
	return R, nil
}

// Readable returns true if it is possible to call Next on the handle.
func (R *Reader) Readable() bool {
	return R.readable
}

// Natoms returns the number of nucleotides in each frame.
func (R *Reader) Natoms() int {
	return R.natoms
}

// Next reads the next frame into f, which must hold Natoms nucleotides.
// If f is nil the frame is skipped: the lines are still consumed and
// checked for shape, but not parsed into numbers. The normal end of the
// trajectory is signaled by an error satisfying oxdna.LastFrameError.
func (R *Reader) Next(f *oxdna.Frame) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	if f != nil && f.Len() != R.natoms {
		return Error{fmt.Sprintf("frame holds %d nucleotides, trajectory has %d", f.Len(), R.natoms), R.filename, []string{"Next"}, true}
	}
	line, err := R.nonEmptyLine()
	if err != nil {
		if err == io.EOF {
			R.Close()
			return newlastFrameError(R.filename, "Next")
		}
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	t, err := headerValues(line, "t", 1)
	if err != nil {
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	line, err = R.line()
	if err != nil {
		return Error{"Truncated frame header: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	box, err := headerValues(line, "b", 3)
	if err != nil {
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	line, err = R.line()
	if err != nil {
		return Error{"Truncated frame header: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	energy, err := headerValues(line, "E", 3)
	if err != nil {
		return Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	if f != nil {
		f.Time = t[0]
		copy(f.Box, box)
		copy(f.Energy, energy)
	}
	for i := 0; i < R.natoms; i++ {
		line, err = R.line()
		if err != nil {
			return Error{fmt.Sprintf("Frame truncated at nucleotide %d: %s", i, err.Error()), R.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "t" {
			return Error{fmt.Sprintf("Frame has only %d of %d nucleotides", i, R.natoms), R.filename, []string{"Next"}, true}
		}
		//pos, a1 and a3. Velocities and angular momenta, if present, are ignored.
		if len(fields) < 9 {
			return Error{fmt.Sprintf("Nucleotide line with %d fields, 9 needed: %s", len(fields), line), R.filename, []string{"Next"}, true}
		}
		if f == nil {
			continue
		}
		for j := 0; j < 9; j++ {
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse nucleotide %d: %s", i, err.Error()), R.filename, []string{"Next"}, true}
			}
			switch {
			case j < 3:
				f.Pos.Set(i, j, v)
			case j < 6:
				f.A1.Set(i, j-3, v)
			default:
				f.A3.Set(i, j-6, v)
			}
		}
	}
	return nil
}

// SkipFrames discards the next n frames.
func (R *Reader) SkipFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := R.Next(nil); err != nil {
			return errDecorate(err, fmt.Sprintf("SkipFrames: %d", i))
		}
	}
	return nil
}

// Close closes the handle and marks it as unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	if R.z != nil {
		R.z.Close()
	}
	R.f.Close()
	R.readable = false
}

func (R *Reader) line() (string, error) {
	s, err := R.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return "", err
	}
	return strings.TrimSuffix(s, "\n"), nil
}

// nonEmptyLine returns the next line with content, eating blank lines,
// so a trailing newline at the end of a file does not read as a frame.
func (R *Reader) nonEmptyLine() (string, error) {
	for {
		s, err := R.line()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
}

// headerValues parses a "key = v1 v2..." header line with the given key
// and number of values.
func headerValues(line, key string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < n+2 || fields[0] != key || fields[1] != "=" {
		return nil, fmt.Errorf("Malformed '%s' header line: %s", key, line)
	}
	ret := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i+2], 64)
		if err != nil {
			return nil, fmt.Errorf("Malformed '%s' header line: %s", key, line)
		}
		ret[i] = v
	}
	return ret, nil
}

// FrameCount returns the number of frames in a trajectory file by
// scanning it once for frame headers.
func FrameCount(name string) (int, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, Error{err.Error(), name, []string{"FrameCount"}, true}
	}
	defer f.Close()
	z, err := decompressor(name, bufio.NewReader(f))
	if err != nil {
		return 0, Error{"Can't set up decompression: " + err.Error(), name, []string{"FrameCount"}, true}
	}
	var scan *bufio.Scanner
	if z != nil {
		defer z.Close()
		scan = bufio.NewScanner(z)
	} else {
		scan = bufio.NewScanner(f)
	}
	count := 0
	for scan.Scan() {
		if strings.HasPrefix(scan.Text(), "t ") {
			count++
		}
	}
	if err := scan.Err(); err != nil {
		return 0, Error{err.Error(), name, []string{"FrameCount"}, true}
	}
	return count, nil
}

// Writer writes oxDNA configuration/trajectory files, compressing by
// filename suffix the same way Reader decompresses.
type Writer struct {
	f         *os.File
	z         io.WriteCloser //nil for uncompressed files
	h         *bufio.Writer
	natoms    int
	filename  string
	writeable bool
}

func compressor(name string, f io.Writer) (io.WriteCloser, error) {
	switch {
	case strings.HasSuffix(name, ".zst"):
		return zstd.NewWriter(f)
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewWriter(f), nil
	case strings.HasSuffix(name, ".flate"):
		return flate.NewWriter(f, flate.DefaultCompression)
	}
	return nil, nil
}

// NewWriter creates the named file and returns a handle that will write
// frames of natoms nucleotides to it.
func NewWriter(name string, natoms int) (*Writer, error) {
	if natoms < 1 {
		return nil, Error{fmt.Sprintf("can't write frames of %d nucleotides", natoms), name, []string{"NewWriter"}, true}
	}
	W := new(Writer)
	W.filename = name
	W.natoms = natoms
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W.z, err = compressor(name, W.f)
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if W.z != nil {
		W.h = bufio.NewWriter(W.z)
	} else {
		W.h = bufio.NewWriter(W.f)
	}
	W.writeable = true
	return W, nil
}

// Natoms returns the number of nucleotides in each frame.
func (W *Writer) Natoms() int {
	return W.natoms
}

// WNext writes f as the next frame. Velocities and angular momenta are
// written as zeros. Numbers are written in the shortest representation
// that parses back to the same float64, so written trajectories
// round-trip exactly.
func (W *Writer) WNext(f *oxdna.Frame) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if f == nil {
		return Error{NilFrame, W.filename, []string{"WNext"}, true}
	}
	if f.Len() != W.natoms {
		return Error{fmt.Sprintf("frame holds %d nucleotides, writer expects %d", f.Len(), W.natoms), W.filename, []string{"WNext"}, true}
	}
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	fmt.Fprintf(W.h, "t = %s\n", g(f.Time))
	fmt.Fprintf(W.h, "b = %s %s %s\n", g(f.Box[0]), g(f.Box[1]), g(f.Box[2]))
	fmt.Fprintf(W.h, "E = %s %s %s\n", g(f.Energy[0]), g(f.Energy[1]), g(f.Energy[2]))
	for i := 0; i < W.natoms; i++ {
		fmt.Fprintf(W.h, "%s %s %s %s %s %s %s %s %s 0 0 0 0 0 0\n",
			g(f.Pos.At(i, 0)), g(f.Pos.At(i, 1)), g(f.Pos.At(i, 2)),
			g(f.A1.At(i, 0)), g(f.A1.At(i, 1)), g(f.A1.At(i, 2)),
			g(f.A3.At(i, 0)), g(f.A3.At(i, 1)), g(f.A3.At(i, 2)))
	}
	if err := W.h.Flush(); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

// Close flushes and closes the handle. The file is not complete until
// Close has been called.
func (W *Writer) Close() error {
	if !W.writeable {
		return nil
	}
	W.writeable = false
	if err := W.h.Flush(); err != nil {
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	if W.z != nil {
		if err := W.z.Close(); err != nil {
			return Error{err.Error(), W.filename, []string{"Close"}, true}
		}
	}
	if err := W.f.Close(); err != nil {
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Errors

// errDecorate asserts that the error implements oxdna.Error and
// decorates it with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(oxdna.Error) //the errors in this package all implement it
	err2.Decorate(caller)
	return err2
}

// Error is the general type for oxDNA trajectory errors. It fulfills
// oxdna.Error and oxdna.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or an empty string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("oxdna file %s error: %s", err.filename, err.message)
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

// FileName returns the file associated to the failing trajectory.
func (err Error) FileName() string { return err.filename }

// Format returns the format associated to the error (always "oxdna").
func (err Error) Format() string { return "oxdna" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Trajectory not initialized to read"
	TrajUnIniWrite = "Trajectory not initialized to write"
	NilFrame       = "Given nil frame"
)

// lastFrameError implements oxdna.LastFrameError.
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "oxdna" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
