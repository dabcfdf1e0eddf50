/*
 * codec_test.go, part of gofchk.
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
 */

package fchk

import (
	"bufio"
	"strings"
	"testing"
)

func TestIntegerDecode(Te *testing.T) {
	header := "Atomic numbers                             I   N=           3"
	dtype, ndata, ncols, nlines, err := infoBlock("test", header)
	if err != nil {
		Te.Fatal(err)
	}
	if dtype != Integer || ndata != 3 || ncols != 6 || nlines != 1 {
		Te.Errorf("wrong header info: %c %d %d %d", dtype, ndata, ncols, nlines)
	}
	br := bufio.NewReader(strings.NewReader("           6           1           1\n"))
	b, err := readDataBlock("test", br, header, dtype, ndata)
	if err != nil {
		Te.Fatal(err)
	}
	if len(b.I) != 3 || b.I[0] != 6 || b.I[1] != 1 || b.I[2] != 1 {
		Te.Errorf("wrong integers decoded: %v", b.I)
	}
}

func TestScalarDecode(Te *testing.T) {
	header := "SCF Energy                                 R     -7.600000000000000E+01"
	dtype, ndata, _, nlines, err := infoBlock("test", header)
	if err != nil {
		Te.Fatal(err)
	}
	if ndata != 0 || nlines != 0 {
		Te.Errorf("scalar taken for an array: %d %d", ndata, nlines)
	}
	b, err := readDataBlock("test", bufio.NewReader(strings.NewReader("")), header, dtype, ndata)
	if err != nil {
		Te.Fatal(err)
	}
	if len(b.R) != 1 || b.R[0] != -76.0 {
		Te.Errorf("wrong scalar decoded: %v", b.R)
	}
}

//Words in character blocks can be cut at a cell or line boundary with no
//separating space, so cells must never be tokenized one by one.
func TestCharacterSplit(Te *testing.T) {
	header := "Route                                      C   N=           6"
	data := "ABCDEFGHIJ  \n" + //one word spanning two cells, no space between
		"KLMNO       \n"
	br := bufio.NewReader(strings.NewReader(data))
	b, err := readDataBlock("test", br, header, Character, 6)
	if err != nil {
		Te.Fatal(err)
	}
	if len(b.C) != 2 || b.C[0] != "ABCDEFGHIJ" || b.C[1] != "KLMNO" {
		Te.Errorf("wrong character decode: %v", b.C)
	}
}

func TestCharacterLineBoundary(Te *testing.T) {
	//a word cut by the line boundary itself must be glued back
	header := "Route                                      C   N=           6"
	data := "#P B3LYP/6-311G(d,p) Freq   SPLITWORDSPL\n" +
		"IT          \n"
	br := bufio.NewReader(strings.NewReader(data))
	b, err := readDataBlock("test", br, header, Character, 6)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"#P", "B3LYP/6-311G(d,p)", "Freq", "SPLITWORDSPLIT"}
	if len(b.C) != len(want) {
		Te.Fatalf("wrong token count: %v", b.C)
	}
	for i, w := range want {
		if b.C[i] != w {
			Te.Errorf("token %d: got %q, want %q", i, b.C[i], w)
		}
	}
}

func TestUnknownType(Te *testing.T) {
	header := "Weird block                                Q   N=           4"
	_, _, _, _, err := infoBlock("test", header)
	if !IsKind(err, ErrUnsupportedDataType) {
		Te.Errorf("expected an unsupported-type error, got %v", err)
	}
}

func TestEncodeDecode(Te *testing.T) {
	b := Ints(1, 2, 3, 4, 5, 6, 7)
	enc, err := encodeData("test", Integer, b)
	if err != nil {
		Te.Fatal(err)
	}
	if strings.Count(enc, "\n") != 2 { //6 values per line, then 1
		Te.Errorf("wrong chunking:\n%s", enc)
	}
	br := bufio.NewReader(strings.NewReader(enc))
	b2, err := readDataBlock("test", br, headerLine("Whatever", Integer, b.Len()), Integer, b.Len())
	if err != nil {
		Te.Fatal(err)
	}
	for i := range b.I {
		if b2.I[i] != b.I[i] {
			Te.Errorf("value %d changed in the round trip: %d", i, b2.I[i])
		}
	}
}
