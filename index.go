/*
 * index.go, part of gofchk.
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
	"io"
	"regexp"
	"strconv"
)

//keyRecord is what the index stores for one keyword: the declared data type,
//the element count (0 for scalars) and the byte offset of the header line.
type keyRecord struct {
	dtype  DataType
	count  int
	offset int64
}

//A header line is a title starting at the first column, followed by a
//standalone type character and a value. N= marks an array, with the value as
//element count; without it the line is a scalar and the value is the datum
//itself, irrelevant for indexing. The title class covers the punctuation the
//producer actually uses, e.g. "Alpha(-w,w)" or "D-Q polarizability"; keeping
//it closed avoids matching character data lines, which also start at the
//first column.
var headerRx = regexp.MustCompile(`^([\w /()',.=*+-]+?)\s*\b([IRC])\b\s*(N=)?\s+([-+.\dE]+)$`)

//scanKeys runs a single forward pass over r and returns the keyword index.
//The offset of each record is the exact byte position of the header line,
//obtained by summing the lengths of all previous lines, so later seeks are
//byte-accurate. If a keyword appears more than once, the last occurrence
//wins, silently; that is the observed behavior of the files' producer and of
//tools reading them.
func scanKeys(r io.Reader) map[string]keyRecord {
	keys := make(map[string]keyRecord)
	br := bufio.NewReader(r)
	var fpos int64
	for {
		line, err := readLine(br)
		if line == "" && err != nil {
			break
		}
		trimmed := line
		if n := len(trimmed); n > 0 && trimmed[n-1] == '\n' {
			trimmed = trimmed[:n-1]
		}
		if m := headerRx.FindStringSubmatch(trimmed); m != nil {
			nval := 0
			if m[3] != "" {
				//The count was already vetted by the pattern, barring
				//overflow, in which case 0 is as good an answer as any.
				nval, _ = strconv.Atoi(m[4])
			}
			keys[m[1]] = keyRecord{dtype: DataType(m[2][0]), count: nval, offset: fpos}
		}
		fpos += int64(len(line))
		if err != nil {
			break
		}
	}
	return keys
}
