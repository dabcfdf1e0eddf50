/*
 * fchk_test.go, part of gofchk.
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
	"fmt"
	"os"
	"strings"
	"testing"
)

func sameBlock(Te *testing.T, key string, a, b *Block) {
	if a.Type != b.Type || a.Len() != b.Len() {
		Te.Errorf("%s: blocks differ in shape: %c/%d vs %c/%d", key, a.Type, a.Len(), b.Type, b.Len())
		return
	}
	for i := range a.I {
		if a.I[i] != b.I[i] {
			Te.Errorf("%s: integer %d differs: %d vs %d", key, i, a.I[i], b.I[i])
		}
	}
	for i := range a.R {
		if a.R[i] != b.R[i] {
			Te.Errorf("%s: real %d differs: %v vs %v", key, i, a.R[i], b.R[i])
		}
	}
	for i := range a.C {
		if a.C[i] != b.C[i] {
			Te.Errorf("%s: string %d differs: %q vs %q", key, i, a.C[i], b.C[i])
		}
	}
}

//Indexed and sequential reads of the same keywords must decode identically.
func TestReadIndexedVsSequential(Te *testing.T) {
	fi, err := New("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	fs, err := New("test/water.fchk", false)
	if err != nil {
		Te.Fatal(err)
	}
	keys := []string{"Atomic numbers", "SCF Energy", "Route", "Alpha(-w,w)", "ETran scalars"}
	di, err := fi.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	ds, err := fs.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	for _, k := range keys {
		sameBlock(Te, k, di[k], ds[k])
	}
	fmt.Println("indexed and sequential reads agree")
}

func TestKeysAndVersion(Te *testing.T) {
	f, err := New("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	keys := f.Keys()
	found := 0
	for _, k := range keys {
		if k == "Alpha(-w,w)" || k == "Vib-E2" || k == "Number of atoms" {
			found++
		}
	}
	if found != 3 {
		Te.Errorf("keys missing from the index: %v", keys)
	}
	v := f.Version()
	if v.System != "ES64L" || v.Major != "G16" || v.Minor != "C.01" {
		Te.Errorf("wrong version: %+v", v)
	}
	prog, _ := f.FullVersion()
	if prog != "Gaussian" {
		Te.Errorf("wrong program: %s", prog)
	}
}

func TestMissingKeyword(Te *testing.T) {
	f, err := New("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	_, err = f.ReadData(true, "No such thing")
	if !IsKind(err, ErrMissingKeyword) {
		Te.Errorf("expected a missing-keyword error, got %v", err)
	}
	d, err := f.ReadData(false, "No such thing", "Charge")
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := d["No such thing"]; ok {
		Te.Error("absent keyword got a placeholder block")
	}
	if d["Charge"].I[0] != 0 {
		Te.Errorf("wrong charge: %v", d["Charge"].I)
	}
}

//Growing an array rewrites its header count and shifts every later offset,
//so the write must drop the index and a rebuilt one must work again.
func TestWriteGrow(Te *testing.T) {
	src, err := os.ReadFile("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile("test/water_rw.fchk", src, 0644); err != nil {
		Te.Fatal(err)
	}
	f, err := New("test/water_rw.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	err = f.WriteData(map[string]*Block{"Atomic numbers": Ints(6, 1, 1, 1, 1)}, "", true, true)
	if err != nil {
		Te.Fatal(err)
	}
	if f.Keys() != nil {
		Te.Error("stale index survived an in-place write")
	}
	d, err := f.ReadData(true, "Atomic numbers", "Gaussian Version")
	if err != nil {
		Te.Fatal(err)
	}
	if len(d["Atomic numbers"].I) != 5 || d["Atomic numbers"].I[0] != 6 {
		Te.Errorf("wrong grown block: %v", d["Atomic numbers"].I)
	}
	raw, err := os.ReadFile("test/water_rw.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(raw), "N=           5") {
		Te.Error("header count not updated on disk")
	}
	if err := f.LoadKeys(); err != nil {
		Te.Fatal(err)
	}
	d2, err := f.ReadData(true, "Atomic numbers", "Gaussian Version")
	if err != nil {
		Te.Fatal(err)
	}
	sameBlock(Te, "Atomic numbers", d["Atomic numbers"], d2["Atomic numbers"])
	sameBlock(Te, "Gaussian Version", d["Gaussian Version"], d2["Gaussian Version"])
}

func TestWriteScalar(Te *testing.T) {
	src, err := os.ReadFile("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile("test/water_sc.fchk", src, 0644); err != nil {
		Te.Fatal(err)
	}
	f, err := New("test/water_sc.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	//a multi-value replacement for a scalar is a shape error, unless waived
	err = f.WriteData(map[string]*Block{"Charge": Ints(1, 2)}, "", true, true)
	if !IsKind(err, ErrSizeMismatch) {
		Te.Errorf("expected a size-mismatch error, got %v", err)
	}
	err = f.WriteData(map[string]*Block{"Charge": Ints(-1, 2)}, "", true, false)
	if err != nil {
		Te.Fatal(err)
	}
	d, err := f.ReadData(true, "Charge")
	if err != nil {
		Te.Fatal(err)
	}
	if d["Charge"].I[0] != -1 {
		Te.Errorf("wrong charge after rewrite: %v", d["Charge"].I)
	}
	//an absent keyword is an error only on request
	err = f.WriteData(map[string]*Block{"No such thing": Ints(1)}, "", true, true)
	if !IsKind(err, ErrMissingKeyword) {
		Te.Errorf("expected a missing-keyword error, got %v", err)
	}
	err = f.WriteData(map[string]*Block{"No such thing": Ints(1)}, "", false, true)
	if err != nil {
		Te.Error(err)
	}
}

//Writing back every block unmodified must yield the same decoded data.
func TestRoundTrip(Te *testing.T) {
	f, err := New("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	keys := f.Keys()
	all, err := f.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	if err := f.WriteData(all, "test/water_copy.fchk", true, true); err != nil {
		Te.Fatal(err)
	}
	g, err := New("test/water_copy.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	all2, err := g.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	for _, k := range keys {
		sameBlock(Te, k, all[k], all2[k])
	}
}

func TestGzipRead(Te *testing.T) {
	fz, err := New("test/water.fchk.gz")
	if err != nil {
		Te.Fatal(err)
	}
	f, err := New("test/water.fchk")
	if err != nil {
		Te.Fatal(err)
	}
	keys := []string{"Atomic numbers", "Current cartesian coordinates", "Gaussian Version"}
	dz, err := fz.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	d, err := f.ReadData(true, keys...)
	if err != nil {
		Te.Fatal(err)
	}
	for _, k := range keys {
		sameBlock(Te, k, d[k], dz[k])
	}
	err = fz.WriteData(map[string]*Block{"Charge": Ints(1)}, "", true, true)
	if !IsKind(err, ErrArgument) {
		Te.Errorf("expected rewrites of compressed files to be refused, got %v", err)
	}
}
