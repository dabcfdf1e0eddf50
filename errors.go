/*
 * errors.go, part of gofchk.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * gofchk is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package fchk

import "fmt"

// Kind is the closed set of failure classes of this package. Every error
// returned by the package carries exactly one Kind, so callers can branch on
// the class without parsing messages.
type Kind int

const (
	//ErrMissingKeyword: a requested keyword is absent from the file.
	ErrMissingKeyword Kind = iota + 1
	//ErrUnsupportedDataType: a header line declares a type other than I, R or C.
	ErrUnsupportedDataType
	//ErrUnsupportedQuantity: the quantity is not modeled, or not stored in
	//checkpoints at all.
	ErrUnsupportedQuantity
	//ErrNotImplemented: the quantity is modeled but deliberately unfinished.
	ErrNotImplemented
	//ErrSizeMismatch: a replacement value disagrees in shape with the block
	//present in the file.
	ErrSizeMismatch
	//ErrIndexOutOfRange: an electronic-state or incident-frequency selector
	//points outside the stored data.
	ErrIndexOutOfRange
	//ErrArgument: contradictory or insufficient call arguments.
	ErrArgument
	//ErrMissingData: coarse outcome of the quantity facade covering
	//ErrMissingKeyword and ErrIndexOutOfRange. The finer kinds are only
	//available below GetData.
	ErrMissingData
)

//This predates the "wrapping" error system of Go (i.e. the "%w" directive and
//the errors package). We should avoid using the Decorate method and/or make it
//use the "%w" directive internally.

// ChainError is the interface for errors in this library. The Decorate method
// allows to add and retrieve info from the error, without changing its type or
// wrapping it around something else. The decorate slice should contain a list
// of the functions in the calling stack, plus, for each function, any relevant
// information, or nothing.
type ChainError interface {
	Error() string
	Decorate(string) []string
}

// Error is the concrete error of the package. It fulfills ChainError.
type Error struct {
	kind     Kind
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("fchk error: %s", err.message)
	}
	return fmt.Sprintf("fchk file %s error: %s", err.filename, err.message)
}

// Kind returns the failure class of the error.
func (err Error) Kind() Kind { return err.kind }

// Decorate adds new information to the error.
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file to which the failing operation was associated,
// or an empty string if there is none.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error (always "fchk").
func (err Error) Format() string { return "fchk" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

// IsKind returns true if err is an Error of the package with the given Kind.
func IsKind(err error, k Kind) bool {
	e, ok := err.(Error)
	return ok && e.kind == k
}

//errDecorate asserts that the error implements ChainError and decorates it
//with the caller's name before returning it. Used with any other error it
//will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(ChainError)
	err2.Decorate(caller)
	return err2
}

const (
	UnableToOpen      = "Unable to open file"
	WrongFormat       = "Wrong format in the fchk file"
	MissingScalars    = "Missing scalars definition"
	MissingGroundEner = "Missing ground-state energy"
	UnsupportedTrans  = "Unsupported transition"
	MissingState      = "Missing electronic state"
	UnknownQuantity   = "Unknown quantity"
	NothingToDo       = "Nothing to do"
)
