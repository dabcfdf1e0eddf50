/*
 * codec.go, part of gofchk.
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

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// DataType is the type character an fchk header line declares for its block.
type DataType byte

const (
	Integer   DataType = 'I'
	Real      DataType = 'R'
	Character DataType = 'C'
)

//Maximum number of data columns per line, for each type.
func (t DataType) columns() int {
	switch t {
	case Integer:
		return 6
	case Real, Character:
		return 5
	}
	return 0
}

//Format of one data field, for each type. Width 12 for integers and
//characters, 16 with 8 significant digits for reals.
func (t DataType) dataFormat() string {
	switch t {
	case Integer:
		return "%12d"
	case Real:
		return "%16.8E"
	}
	return "%-12s" //character cells are left-aligned, words can span two cells
}

func (t DataType) valid() bool {
	return t == Integer || t == Real || t == Character
}

// Block is the decoded content found under one keyword. Only the slice
// matching Type is filled. Scalars are blocks of length 1.
type Block struct {
	Type DataType
	I    []int
	R    []float64
	C    []string
}

// Len returns the number of values in the block.
func (b *Block) Len() int {
	switch b.Type {
	case Integer:
		return len(b.I)
	case Real:
		return len(b.R)
	case Character:
		return len(b.C)
	}
	return 0
}

// Ints returns a Block of integers ready to be written.
func Ints(v ...int) *Block { return &Block{Type: Integer, I: v} }

// Reals returns a Block of reals ready to be written.
func Reals(v ...float64) *Block { return &Block{Type: Real, R: v} }

// Chars returns a Block of character data ready to be written.
func Chars(v ...string) *Block { return &Block{Type: Character, C: v} }

//infoBlock extracts type, element count, columns per line and number of data
//lines from a header line. Scalars have count and lines 0.
func infoBlock(filename, line string) (DataType, int, int, int, error) {
	cols := strings.Fields(line)
	var dtype DataType
	var ndata int
	var err error
	if strings.Contains(line, "N=") {
		if len(cols) < 3 {
			return 0, 0, 0, 0, Error{ErrUnsupportedDataType, WrongFormat + ": " + line, filename, []string{"infoBlock"}, true}
		}
		dtype = DataType(cols[len(cols)-3][0])
		ndata, err = strconv.Atoi(cols[len(cols)-1])
		if err != nil {
			return 0, 0, 0, 0, Error{ErrUnsupportedDataType, "Can't read block size: " + err.Error(), filename, []string{"infoBlock"}, true}
		}
	} else {
		if len(cols) < 2 {
			return 0, 0, 0, 0, Error{ErrUnsupportedDataType, WrongFormat + ": " + line, filename, []string{"infoBlock"}, true}
		}
		dtype = DataType(cols[len(cols)-2][0])
		ndata = 0
	}
	if !dtype.valid() {
		return 0, 0, 0, 0, Error{ErrUnsupportedDataType, fmt.Sprintf("Unsupported data type %q", string(dtype)), filename, []string{"infoBlock"}, true}
	}
	nc := dtype.columns()
	nlines := (ndata + nc - 1) / nc
	return dtype, ndata, nc, nlines, nil
}

//readDataBlock decodes the block whose header line has just been read from br.
//For scalars the value is the last whitespace-separated token of the header
// line itself. Character arrays must be concatenated raw before re-splitting:
//Gaussian cuts strings arbitrarily at the 12-column boundary, with no
//separating space, so splitting line by line corrupts the data.
func readDataBlock(filename string, br *bufio.Reader, line string, dtype DataType, ndata int) (*Block, error) {
	if !dtype.valid() {
		return nil, Error{ErrUnsupportedDataType, fmt.Sprintf("Unsupported data type %q", string(dtype)), filename, []string{"readDataBlock"}, true}
	}
	nc := dtype.columns()
	nlines := (ndata + nc - 1) / nc
	b := &Block{Type: dtype}
	if nlines == 0 {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, Error{ErrUnsupportedDataType, WrongFormat + ": empty header line", filename, []string{"readDataBlock"}, true}
		}
		return scalarValue(filename, dtype, fields[len(fields)-1])
	}
	if dtype == Character {
		raw := ""
		for i := 0; i < nlines; i++ {
			l, err := readLine(br)
			if l == "" && err != nil {
				return nil, Error{ErrMissingKeyword, "Truncated character block: " + err.Error(), filename, []string{"readDataBlock"}, true}
			}
			raw += strings.TrimSuffix(l, "\n")
		}
		b.C = strings.Fields(raw)
		return b, nil
	}
	for i := 0; i < nlines; i++ {
		l, err := readLine(br)
		if l == "" && err != nil {
			return nil, Error{ErrMissingKeyword, "Truncated data block: " + err.Error(), filename, []string{"readDataBlock"}, true}
		}
		for _, field := range strings.Fields(l) {
			if dtype == Integer {
				v, err := strconv.Atoi(field)
				if err != nil {
					return nil, Error{ErrUnsupportedDataType, fmt.Sprintf("Can't parse integer %q: %s", field, err.Error()), filename, []string{"readDataBlock"}, true}
				}
				b.I = append(b.I, v)
			} else {
				v, err := strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, Error{ErrUnsupportedDataType, fmt.Sprintf("Can't parse real %q: %s", field, err.Error()), filename, []string{"readDataBlock"}, true}
				}
				b.R = append(b.R, v)
			}
		}
	}
	return b, nil
}

func scalarValue(filename string, dtype DataType, field string) (*Block, error) {
	b := &Block{Type: dtype}
	switch dtype {
	case Integer:
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, Error{ErrUnsupportedDataType, fmt.Sprintf("Can't parse integer %q: %s", field, err.Error()), filename, []string{"scalarValue"}, true}
		}
		b.I = []int{v}
	case Real:
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, Error{ErrUnsupportedDataType, fmt.Sprintf("Can't parse real %q: %s", field, err.Error()), filename, []string{"scalarValue"}, true}
		}
		b.R = []float64{v}
	case Character:
		b.C = []string{field}
	}
	return b, nil
}

//headerLine formats the header of an array block with the given element count.
func headerLine(name string, dtype DataType, count int) string {
	return fmt.Sprintf("%-40s   %c   N=%12d\n", name, dtype, count)
}

//scalarLine formats a full scalar line for the given keyword, in the fixed
//scalar format of the file. Only the first value of b is used; WriteData
//checks the shape beforehand.
func scalarLine(filename, name string, dtype DataType, b *Block) (string, error) {
	if b.Len() < 1 {
		return "", Error{ErrSizeMismatch, "Empty replacement for scalar " + name, filename, []string{"scalarLine"}, true}
	}
	switch dtype {
	case Integer:
		if len(b.I) == 0 {
			return "", Error{ErrSizeMismatch, "Integer value needed for " + name, filename, []string{"scalarLine"}, true}
		}
		return fmt.Sprintf("%-40s   I     %12d\n", name, b.I[0]), nil
	case Real:
		if len(b.R) == 0 {
			return "", Error{ErrSizeMismatch, "Real value needed for " + name, filename, []string{"scalarLine"}, true}
		}
		return fmt.Sprintf("%-40s   R     %22.15E\n", name, b.R[0]), nil
	case Character:
		if len(b.C) == 0 {
			return "", Error{ErrSizeMismatch, "Character value needed for " + name, filename, []string{"scalarLine"}, true}
		}
		return fmt.Sprintf("%-40s   C     %-12s\n", name, b.C[0]), nil
	}
	return "", Error{ErrUnsupportedDataType, fmt.Sprintf("Unsupported data type %q", string(dtype)), filename, []string{"scalarLine"}, true}
}

//encodeData chunks the values of b into data lines of the fixed column format
//of dtype, which must match the type of the block.
func encodeData(filename string, dtype DataType, b *Block) (string, error) {
	if b.Type != dtype {
		return "", Error{ErrSizeMismatch, fmt.Sprintf("Replacement block of type %q for a block of type %q", string(b.Type), string(dtype)), filename, []string{"encodeData"}, true}
	}
	nc := dtype.columns()
	format := dtype.dataFormat()
	var sb strings.Builder
	n := b.Len()
	for i := 0; i < n; i++ {
		switch dtype {
		case Integer:
			fmt.Fprintf(&sb, format, b.I[i])
		case Real:
			fmt.Fprintf(&sb, format, b.R[i])
		case Character:
			fmt.Fprintf(&sb, format, b.C[i])
		}
		if (i+1)%nc == 0 || i == n-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

//readLine reads one line from br, newline included. At the end of the file the
//last line may come without error but also without a trailing newline.
func readLine(br *bufio.Reader) (string, error) {
	return br.ReadString('\n')
}
