/*
 * errors.go, part of goagbnp.
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

package agbnp

import "fmt"

//Error is the interface for errors that this library produces. Decorate
//adds information on the site of the error as the error is passed up
//the call stack.
type Error interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//CError (Concrete Error) is the only implementation of Error in this
//package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds the dec string to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
//All errors from this package are critical: a failed evaluation leaves
//no usable energies or gradients.
func (err CError) Critical() bool { return true }

func newError(format string, args ...interface{}) CError {
	return CError{msg: fmt.Sprintf(format, args...)}
}

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. Calling it with a foreign error is a bug
//and will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics caused by programming errors
//(as opposed to recoverable conditions, which use Error). It satisfies
//the error interface so it can be recovered into one.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilCoordinates  = PanicMsg("goagbnp: nil coordinate matrix")
	ErrNilModel        = PanicMsg("goagbnp: operation on a nil model")
	ErrIndexOutOfRange = PanicMsg("goagbnp: atom index out of range")
)
