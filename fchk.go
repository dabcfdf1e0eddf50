/*
 * fchk.go, part of gofchk.
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
	"bytes"
	"compress/gzip"
	"io"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// FChk handles one formatted checkpoint file. The zero value is not usable;
// use New. FChk keeps no open file handle between calls: every read opens,
// seeks and closes on its own, so a single FChk can serve many reads.
// Concurrent writers to the same path are the caller's responsibility.
type FChk struct {
	filename string
	keys     map[string]keyRecord //nil when the index is not loaded
	version  Version
	image    []byte //decompressed content, for compressed sources only
}

// Version identifies the program that produced the checkpoint. Old producers
// did not write it, in which case all fields are empty.
type Version struct {
	System string
	Major  string
	Minor  string
}

var versionRx = regexp.MustCompile(`(\w+)-(\w{3})Rev([\w.+]+)`)

// New opens the formatted checkpoint file name and returns a handle to it.
// By default it scans the file once to index every keyword; pass false to
// skip the scan and have reads run sequentially instead. Files ending in
// .gz/.gzip or .zst/.zstd are decompressed into memory first, so the index
// and the seeks keep working on them.
func New(name string, loadKeys ...bool) (*FChk, error) {
	lk := true
	if len(loadKeys) > 0 {
		lk = loadKeys[0]
	}
	F := &FChk{filename: name}
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{ErrArgument, UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	defer f.Close()
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz") || strings.HasSuffix(lower, ".gzip"):
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{ErrArgument, WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
		F.image, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return nil, Error{ErrArgument, WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
	case strings.HasSuffix(lower, ".zst") || strings.HasSuffix(lower, ".zstd"):
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{ErrArgument, WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
		F.image, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return nil, Error{ErrArgument, WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
	}
	if lk {
		if err := F.LoadKeys(); err != nil {
			return nil, errDecorate(err, "New")
		}
	}
	F.readVersion()
	return F, nil
}

//open hands out something seekable over the checkpoint content, plus a closer
//that may be nil for in-memory sources.
func (F *FChk) open() (io.ReadSeeker, io.Closer, error) {
	if F.image != nil {
		return bytes.NewReader(F.image), nil, nil
	}
	f, err := os.Open(F.filename)
	if err != nil {
		return nil, nil, Error{ErrArgument, UnableToOpen + ": " + err.Error(), F.filename, []string{"open"}, true}
	}
	return f, f, nil
}

// Filename returns the name of the file associated to the handle.
func (F *FChk) Filename() string { return F.filename }

// LoadKeys (re)builds the keyword index with a single pass over the file.
// New calls it unless told otherwise; it must be called again before indexed
// reads after any in-place write, since a rewrite can shift every byte offset
// after the first replaced block.
func (F *FChk) LoadKeys() error {
	r, c, err := F.open()
	if err != nil {
		return errDecorate(err, "LoadKeys")
	}
	if c != nil {
		defer c.Close()
	}
	F.keys = scanKeys(r)
	return nil
}

// Keys returns the sorted keywords available in the file, or nil if the index
// was not loaded.
func (F *FChk) Keys() []string {
	if F.keys == nil {
		return nil
	}
	ks := make([]string, 0, len(F.keys))
	for k := range F.keys {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Version returns the version of the program that generated the checkpoint.
// Earlier versions of Gaussian did not store this, so it may be empty.
func (F *FChk) Version() Version { return F.version }

// FullVersion returns the producing software family and its version.
func (F *FChk) FullVersion() (string, Version) { return "Gaussian", F.version }

func (F *FChk) readVersion() {
	blocks, err := F.ReadData(false, "Gaussian Version")
	if err != nil {
		return
	}
	b, ok := blocks["Gaussian Version"]
	if !ok || b.Type != Character {
		return
	}
	if m := versionRx.FindStringSubmatch(strings.Join(b.C, "")); m != nil {
		F.version = Version{System: m[1], Major: m[2], Minor: m[3]}
	}
}

// ReadData extracts the data blocks for the given keywords. With the index
// loaded, the requested keywords are visited in order of appearance in the
// file, one forward pass of seeks, whatever the order they were asked in.
// Without it, the file is streamed once and lines are prefix-matched against
// the pending keywords. Keywords not found are an ErrMissingKeyword error if
// raiseError is true; otherwise they are silently left out of the returned
// map, with no placeholder.
func (F *FChk) ReadData(raiseError bool, toFind ...string) (map[string]*Block, error) {
	data := make(map[string]*Block)
	r, c, err := F.open()
	if err != nil {
		return nil, errDecorate(err, "ReadData")
	}
	if c != nil {
		defer c.Close()
	}
	if F.keys != nil {
		type hit struct {
			key string
			rec keyRecord
		}
		hits := make([]hit, 0, len(toFind))
		for _, k := range toFind {
			rec, ok := F.keys[strings.TrimSpace(k)]
			if !ok {
				if raiseError {
					return nil, Error{ErrMissingKeyword, "Missing keyword: " + k, F.filename, []string{"ReadData"}, true}
				}
				continue
			}
			hits = append(hits, hit{k, rec})
		}
		sort.Slice(hits, func(i, j int) bool { return hits[i].rec.offset < hits[j].rec.offset })
		for _, h := range hits {
			if _, err := r.Seek(h.rec.offset, io.SeekStart); err != nil {
				return nil, Error{ErrMissingKeyword, "Can't seek to " + h.key + ": " + err.Error(), F.filename, []string{"ReadData"}, true}
			}
			br := bufio.NewReader(r)
			line, lerr := readLine(br)
			if line == "" && lerr != nil {
				return nil, Error{ErrMissingKeyword, "Can't read header of " + h.key, F.filename, []string{"ReadData"}, true}
			}
			b, err := readDataBlock(F.filename, br, strings.TrimSuffix(line, "\n"), h.rec.dtype, h.rec.count)
			if err != nil {
				return nil, errDecorate(err, "ReadData")
			}
			data[h.key] = b
		}
		return data, nil
	}
	//Sequential search: no index, stream the whole file once.
	pending := make(map[string]bool, len(toFind))
	for _, k := range toFind {
		pending[k] = true
	}
	br := bufio.NewReader(r)
	for len(pending) > 0 {
		line, lerr := readLine(br)
		if line == "" && lerr != nil {
			break
		}
		for k := range pending {
			if strings.HasPrefix(line, k) {
				dtype, ndata, _, _, ierr := infoBlock(F.filename, strings.TrimSuffix(line, "\n"))
				if ierr != nil {
					return nil, errDecorate(ierr, "ReadData")
				}
				b, err := readDataBlock(F.filename, br, strings.TrimSuffix(line, "\n"), dtype, ndata)
				if err != nil {
					return nil, errDecorate(err, "ReadData")
				}
				data[k] = b
				delete(pending, k)
				break
			}
		}
		if lerr != nil {
			break
		}
	}
	if len(pending) > 0 && raiseError {
		missing := make([]string, 0, len(pending))
		for k := range pending {
			missing = append(missing, k)
		}
		sort.Strings(missing)
		return nil, Error{ErrMissingKeyword, "Missing keyword(s): " + strings.Join(missing, ", "), F.filename, []string{"ReadData"}, true}
	}
	return data, nil
}

// WriteData rewrites the blocks for the given keywords, leaving every other
// byte of the file untouched. If newFile is empty the data go through a
// temporary file which is then copied back over the original; that copy-back
// is not crash-atomic, so a failure in the middle of it can leave the
// original partially updated. Arrays may grow or shrink: the header is
// rewritten with the new element count and the data re-chunked, which shifts
// every byte offset after that point. For that reason an in-place write that
// replaced anything drops the keyword index; reads fall back to sequential
// until LoadKeys is called again.
//
// Keywords absent from the file are an ErrMissingKeyword error if errorKey is
// true, and silently ignored otherwise. Replacing a scalar with more than one
// value is an ErrSizeMismatch if errorSize is true; otherwise the first value
// is written in the scalar format and the rest dropped.
func (F *FChk) WriteData(data map[string]*Block, newFile string, errorKey, errorSize bool) error {
	if F.image != nil {
		return Error{ErrArgument, "Rewrites of compressed checkpoints are not supported", F.filename, []string{"WriteData"}, true}
	}
	keysOK := make(map[int64]string)
	var keysNo []string
	if F.keys != nil {
		for k := range data {
			if rec, ok := F.keys[strings.TrimSpace(k)]; ok {
				keysOK[rec.offset] = k
			} else {
				keysNo = append(keysNo, k)
			}
		}
	} else {
		//Locate the keywords with a sequential pass, as in ReadData.
		pending := make(map[string]bool, len(data))
		for k := range data {
			pending[k] = true
		}
		src, err := os.Open(F.filename)
		if err != nil {
			return Error{ErrArgument, UnableToOpen + ": " + err.Error(), F.filename, []string{"WriteData"}, true}
		}
		br := bufio.NewReader(src)
		var fpos int64
		for len(pending) > 0 {
			line, lerr := readLine(br)
			if line == "" && lerr != nil {
				break
			}
			if line[0] != ' ' {
				for k := range pending {
					if strings.HasPrefix(line, k) {
						keysOK[fpos] = k
						delete(pending, k)
						break
					}
				}
			}
			fpos += int64(len(line))
			if lerr != nil {
				break
			}
		}
		src.Close()
		for k := range pending {
			keysNo = append(keysNo, k)
		}
	}
	if len(keysNo) > 0 && errorKey {
		sort.Strings(keysNo)
		return Error{ErrMissingKeyword, "Missing keyword(s): " + strings.Join(keysNo, ", "), F.filename, []string{"WriteData"}, true}
	}

	inplace := newFile == ""
	var dest *os.File
	var err error
	if inplace {
		dest, err = os.CreateTemp("", "gofchk")
	} else {
		dest, err = os.Create(newFile)
	}
	if err != nil {
		return Error{ErrArgument, UnableToOpen + ": " + err.Error(), F.filename, []string{"WriteData"}, true}
	}
	werr := F.copyReplacing(dest, data, keysOK, errorSize)
	if werr == nil {
		werr = dest.Sync()
	}
	if werr != nil {
		dest.Close()
		if inplace {
			os.Remove(dest.Name())
		}
		return werr
	}
	if !inplace {
		return dest.Close()
	}
	werr = F.copyBack(dest)
	dest.Close()
	os.Remove(dest.Name())
	if werr != nil {
		return werr
	}
	if len(keysOK) > 0 {
		F.keys = nil //offsets may have shifted; LoadKeys rebuilds on request
	}
	return nil
}

//copyReplacing streams the source file into dest, swapping in the new data
//for each keyword matched by offset. The shape of every replaced block is
//re-derived from the header line actually met during this pass, never from
//the index, which may be stale by now.
func (F *FChk) copyReplacing(dest *os.File, data map[string]*Block, keysOK map[int64]string, errorSize bool) error {
	src, err := os.Open(F.filename)
	if err != nil {
		return Error{ErrArgument, UnableToOpen + ": " + err.Error(), F.filename, []string{"WriteData"}, true}
	}
	defer src.Close()
	w := bufio.NewWriter(dest)
	br := bufio.NewReader(src)
	var fpos int64
	for {
		line, lerr := readLine(br)
		if line == "" && lerr != nil {
			break
		}
		key, replace := keysOK[fpos]
		if !replace {
			w.WriteString(line)
			fpos += int64(len(line))
			if lerr != nil {
				break
			}
			continue
		}
		dtype, ndatRef, _, nlinRef, ierr := infoBlock(F.filename, strings.TrimSuffix(line, "\n"))
		if ierr != nil {
			return errDecorate(ierr, "WriteData")
		}
		b := data[key]
		if ndatRef == 0 {
			if b.Len() > 1 {
				if errorSize {
					return Error{ErrSizeMismatch, "Inconsistency with " + key, F.filename, []string{"WriteData"}, true}
				}
				log.Printf("%d values given for the scalar %s, writing the first and dropping the rest", b.Len(), key)
			}
			sl, serr := scalarLine(F.filename, key, dtype, b)
			if serr != nil {
				return errDecorate(serr, "WriteData")
			}
			w.WriteString(sl)
			fpos += int64(len(line))
		} else {
			//New header carries the new count; the skip below covers
			//exactly the original block.
			w.WriteString(headerLine(key, dtype, b.Len()))
			enc, eerr := encodeData(F.filename, dtype, b)
			if eerr != nil {
				return errDecorate(eerr, "WriteData")
			}
			w.WriteString(enc)
			fpos += int64(len(line))
			for i := 0; i < nlinRef; i++ {
				skip, serr := readLine(br)
				fpos += int64(len(skip))
				if skip == "" && serr != nil {
					return Error{ErrSizeMismatch, "Truncated block for " + key, F.filename, []string{"WriteData"}, true}
				}
			}
		}
		if lerr != nil {
			break
		}
	}
	return w.Flush()
}

//copyBack overwrites the original file with the content of tmp. A crash in
//here leaves the original in a partially updated state; callers that need
//atomicity should write to a new file and rename it themselves.
func (F *FChk) copyBack(tmp *os.File) error {
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return Error{ErrArgument, "Can't rewind temporary file: " + err.Error(), F.filename, []string{"WriteData"}, true}
	}
	out, err := os.Create(F.filename)
	if err != nil {
		return Error{ErrArgument, UnableToOpen + ": " + err.Error(), F.filename, []string{"WriteData"}, true}
	}
	_, cerr := io.Copy(out, tmp)
	if err := out.Close(); cerr == nil {
		cerr = err
	}
	if cerr != nil {
		return Error{ErrArgument, "Copy-back failed: " + cerr.Error(), F.filename, []string{"WriteData"}, true}
	}
	return nil
}
