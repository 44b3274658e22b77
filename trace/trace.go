/*
 * trace.go, part of goagbnp.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
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
 *
 */

package trace

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/goagbnp/v3"
)

//nener is the number of energy components per frame: molecular volume,
//GB, vdW + correction, cavity + correction and hydrogen bonding.
const nener = 7

//Frame is one recorded evaluation.
type Frame struct {
	Coords   *v3.Matrix
	Gradient *v3.Matrix
	Energies [nener]float64
}

//Writer writes evaluation frames to a compressed trace file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
	cprec     float64 //coordinate scaling
	gprec     float64 //gradient scaling
}

//NewWriter creates a trace file for a system of natoms atoms.
//cprec and gprec are the decimal digits kept for coordinates and
//gradients; zero values default to 3 and 5.
func NewWriter(name string, natoms int, cprec, gprec int) (*Writer, error) {
	if cprec <= 0 {
		cprec = 3
	}
	if gprec <= 0 {
		gprec = 5
	}
	w := new(Writer)
	var err error
	w.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	w.h, err = zstd.NewWriter(w.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		w.f.Close()
		return nil, Error{"Can't open compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	w.natoms = natoms
	w.filename = name
	w.writeable = true
	w.cprec = math.Pow(10, float64(cprec))
	w.gprec = math.Pow(10, float64(gprec))
	w.h.Write([]byte(fmt.Sprintf("** %d %d %d\n", natoms, cprec, gprec)))
	return w, nil
}

//Len returns the number of atoms per frame.
func (w *Writer) Len() int { return w.natoms }

//WNext appends one frame.
func (w *Writer) WNext(fr *Frame) error {
	if !w.writeable {
		return Error{TraceUnIniWrite, w.filename, []string{"WNext"}, true}
	}
	if fr == nil || fr.Coords == nil || fr.Gradient == nil {
		return Error{NilFrame, w.filename, []string{"WNext"}, true}
	}
	if v := fr.Coords.NVecs(); v != w.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, w.natoms), w.filename, []string{"WNext"}, true}
	}
	str := "#"
	for _, e := range fr.Energies {
		str += fmt.Sprintf(" %d", int(math.RoundToEven(e*w.gprec)))
	}
	w.h.Write([]byte(str + "\n"))
	for i := 0; i < w.natoms; i++ {
		var t [6]int
		for k := 0; k < 3; k++ {
			t[k] = int(math.RoundToEven(fr.Coords.At(i, k) * w.cprec))
			t[3+k] = int(math.RoundToEven(fr.Gradient.At(i, k) * w.gprec))
		}
		w.h.Write([]byte(fmt.Sprintf("%d %d %d %d %d %d\n", t[0], t[1], t[2], t[3], t[4], t[5])))
	}
	w.h.Write([]byte("*\n"))
	return nil
}

//Close flushes and closes the trace. The Writer can not be used
//afterwards.
func (w *Writer) Close() {
	if w == nil || !w.writeable {
		return
	}
	w.h.Close()
	w.f.Close()
	w.writeable = false
}

//Reader reads frames back from a trace file.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	cprec    float64
	gprec    float64
	readable bool
}

//zstd.Decoder has a Close without an error, so it is not an
//io.ReadCloser on its own.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

//New opens a trace file for reading.
func New(name string) (*Reader, error) {
	r := new(Reader)
	r.natoms = -1
	r.filename = name
	var err error
	r.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	d, err := zstd.NewReader(bufio.NewReader(r.f))
	if err != nil {
		return nil, Error{"Can't open decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	r.z = zstdql{d.Close, d}
	r.h = bufio.NewReader(r.z)
	str, err := r.h.ReadString('\n')
	if err != nil {
		return nil, Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	fields := strings.Fields(strings.TrimSuffix(str, "\n"))
	if len(fields) != 4 || fields[0] != "**" {
		return nil, Error{"Malformed header: " + str, name, []string{"New"}, true}
	}
	var ints [3]int
	for i, v := range fields[1:] {
		ints[i], err = strconv.Atoi(v)
		if err != nil {
			return nil, Error{"Can't read header field " + v, name, []string{"New"}, true}
		}
	}
	r.natoms = ints[0]
	r.cprec = math.Pow(10, float64(ints[1]))
	r.gprec = math.Pow(10, float64(ints[2]))
	r.readable = true
	return r, nil
}

//Len returns the number of atoms per frame.
func (r *Reader) Len() int { return r.natoms }

//Readable returns whether Next can be called on the Reader.
func (r *Reader) Readable() bool { return r.readable }

//Next reads one frame into fr, whose matrices must have the right
//size. On a clean end of the trace it returns an error implementing
//NormalLastFrameTermination.
func (r *Reader) Next(fr *Frame) error {
	if !r.readable {
		return Error{TraceUnIniRead, r.filename, []string{"Next"}, true}
	}
	str, err := r.h.ReadString('\n')
	if err != nil {
		if strings.Contains(err.Error(), "EOF") {
			r.Close()
			return newLastFrameError(r.filename, "Next")
		}
		return Error{err.Error(), r.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(strings.TrimSuffix(str, "\n"))
	if len(fields) != nener+1 || fields[0] != "#" {
		return Error{"Malformed energies line: " + str, r.filename, []string{"Next"}, true}
	}
	for i, v := range fields[1:] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Error{"Can't parse energy " + v, r.filename, []string{"Next"}, true}
		}
		if fr != nil {
			fr.Energies[i] = float64(n) / r.gprec
		}
	}
	for i := 0; i < r.natoms; i++ {
		str, err := r.h.ReadString('\n')
		if err != nil {
			return Error{err.Error(), r.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(strings.TrimSuffix(str, "\n"))
		if len(fields) != 6 {
			return Error{"Malformed atom line: " + str, r.filename, []string{"Next"}, true}
		}
		//a nil frame skips the content but still checks the format
		if fr == nil {
			continue
		}
		for k, v := range fields {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Error{"Can't parse value " + v, r.filename, []string{"Next"}, true}
			}
			if k < 3 {
				fr.Coords.Set(i, k, float64(n)/r.cprec)
			} else {
				fr.Gradient.Set(i, k-3, float64(n)/r.gprec)
			}
		}
	}
	str, err = r.h.ReadString('\n')
	if err != nil || str[0] != '*' {
		return Error{"Can't read the frame termination mark", r.filename, []string{"Next"}, true}
	}
	return nil
}

//Close closes the Reader, which can not be used afterwards.
func (r *Reader) Close() {
	if !r.readable {
		return
	}
	r.z.Close()
	r.f.Close()
	r.readable = false
}

//ZeroFrame returns a Frame with matrices sized for the Reader's
//system.
func (r *Reader) ZeroFrame() *Frame {
	return &Frame{Coords: v3.Zeros(r.natoms), Gradient: v3.Zeros(r.natoms)}
}

//Errors

//Error is the general structure for trace file errors.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("trace file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TraceUnIniRead  = "Trace object uninitialized to read"
	TraceUnIniWrite = "Trace object uninitialized to write"
	NilFrame        = "Given nil frame or matrices"
)

//lastFrameError marks the normal end of a trace.
type lastFrameError struct {
	deco     []string
	fileName string
}

func (e lastFrameError) NormalLastFrameTermination() {}

func (e lastFrameError) FileName() string { return e.fileName }

func (e lastFrameError) Error() string { return "EOF" }

func (e lastFrameError) Critical() bool { return false }

func (e lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

func newLastFrameError(filename, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
