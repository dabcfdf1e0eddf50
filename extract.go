/*
 * extract.go, part of gofchk.
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
	"strings"

	"gonum.org/v1/gonum/mat"
)

// QData holds the extracted values of one quantity. Which fields are filled
// depends on the quantity: counts land in I, plain numeric data in F,
// per-state or per-frequency groups in FF, textual data in S, geometries in
// Mat (one row per atom) and the program version in Version.
type QData struct {
	I       []int
	F       []float64
	FF      [][]float64
	S       string
	Mat     *mat.Dense
	Version *Version
}

//Offsets of each transition moment inside one state's slot of the per-state
//table, and their dimensionality. Empirical constants of the file layout,
//pinned by the scenario tests; do not re-derive them.
const (
	offDipLen  = 1  //electric dipole, length gauge
	offDipVel  = 4  //electric dipole, velocity gauge
	offMagDip  = 7  //magnetic dipole
	offQuad    = 10 //quadrupole family
	dimDipole  = 3
	dimQuad    = 6
	offDipStr  = 7 //times the mode count, into the Vib-E2 table
	offRotStr  = 8 //times the mode count, into the Vib-E2 table
	etranWords = 6 //scalars consumed from the header block
)

//etranHeader is the decoded header of the per-state table: how many states,
//how many values per state (the stride), whether left and right transition
//matrices coincide, the number of header words, the state the calculation
//ran on, and the number of derivative fields.
type etranHeader struct {
	nStates int
	stride  int
	layout  int
	nHeader int
	root    int
	nDeriv  int
}

func etranScalars(filename string, blocks map[string]*Block) (etranHeader, error) {
	b, ok := blocks[kwETranScal]
	if !ok || len(b.I) < etranWords {
		return etranHeader{}, Error{ErrMissingKeyword, MissingScalars, filename, []string{"etranScalars"}, true}
	}
	return etranHeader{
		nStates: b.I[0],
		stride:  b.I[1],
		layout:  b.I[2],
		nHeader: b.I[3],
		root:    b.I[4],
		nDeriv:  b.I[5],
	}, nil
}

//extract slices and combines the raw blocks read for one label into the
//requested quantity. kword is the primary keyword the label resolved to.
func extract(filename string, q QLabel, kword string, blocks map[string]*Block) (*QData, error) {
	b, ok := blocks[kword]
	if !ok {
		if q.Tag == NVib {
			//a robust mode count would need the symmetry and the number
			//of frozen atoms, which checkpoints do not carry as such
			return nil, Error{ErrNotImplemented, "Mode count absent and not derivable", filename, []string{"extract"}, true}
		}
		return nil, Error{ErrMissingKeyword, "Missing quantity in file: " + kword, filename, []string{"extract"}, true}
	}
	switch q.Tag {
	case NAtoms, NVib:
		if len(b.I) == 0 {
			return nil, Error{ErrSizeMismatch, WrongFormat + " for " + kword, filename, []string{"extract"}, true}
		}
		return &QData{I: []int{b.I[0]}}, nil
	case AtCrd:
		if len(b.R)%3 != 0 {
			return nil, Error{ErrSizeMismatch, "Coordinates not divisible in triads", filename, []string{"extract"}, true}
		}
		return &QData{Mat: mat.NewDense(len(b.R)/3, 3, b.R)}, nil
	case AtMass:
		return &QData{F: b.R}, nil
	case AtNum:
		return &QData{I: b.I}, nil
	case SWOpt:
		return &QData{S: strings.Join(b.C, " ")}, nil
	case SWVer:
		m := versionRx.FindStringSubmatch(strings.Join(b.C, ""))
		if m == nil {
			return nil, Error{ErrMissingKeyword, "Can't parse version string", filename, []string{"extract"}, true}
		}
		return &QData{Version: &Version{System: m[1], Major: m[2], Minor: m[3]}}, nil
	case HessVec, HessVal:
		return &QData{F: b.R}, nil
	case MolSym, FCData, VPTData:
		return nil, notImplemented("Quantity")
	}
	if q.State.Pair {
		return extractTransition(filename, q, kword, blocks)
	}
	return extractState(filename, q, kword, blocks)
}

//extractTransition handles quantities referring to an electronic transition,
//stored in the per-state table. Only transitions from or to the ground state
//are representable.
func extractTransition(filename string, q QLabel, kword string, blocks map[string]*Block) (*QData, error) {
	h, err := etranScalars(filename, blocks)
	if err != nil {
		return nil, err
	}
	initial, final := q.State.Initial, q.State.Final
	if !initial.IsGround() {
		if !final.IsGround() {
			return nil, Error{ErrIndexOutOfRange, UnsupportedTrans, filename, []string{"extractTransition"}, true}
		}
		//ground first, so final is always the excited endpoint
		final = initial
	}
	raw := blocks[kword].R
	switch q.Tag {
	case Energy:
		e0b, ok := blocks[kwSCFEnergy]
		if !ok || len(e0b.R) == 0 {
			return nil, Error{ErrMissingKeyword, MissingGroundEner, filename, []string{"extractTransition"}, true}
		}
		e0 := e0b.R[0]
		if final.IsAll() {
			F := make([]float64, h.nStates)
			for i := 0; i < h.nStates; i++ {
				if i*h.stride >= len(raw) {
					return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractTransition"}, true}
				}
				F[i] = raw[i*h.stride] - e0
			}
			return &QData{F: F}, nil
		}
		fstate, err := resolveState(filename, final, h)
		if err != nil {
			return nil, err
		}
		i0 := (fstate - 1) * h.stride
		if i0 >= len(raw) {
			return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractTransition"}, true}
		}
		return &QData{F: []float64{raw[i0] - e0}}, nil
	case ElecDip, MagDip, ElecQuad:
		if q.DOrd != 0 {
			return nil, unsupported("Transition moment derivatives are not stored")
		}
		var offset, dim int
		switch q.Tag {
		case ElecDip:
			dim = dimDipole
			if q.Opt.Gauge == GaugeVel {
				offset = offDipVel
			} else {
				offset = offDipLen
			}
		case MagDip:
			offset, dim = offMagDip, dimDipole
		case ElecQuad:
			offset, dim = offQuad, dimQuad
		}
		if final.IsAll() {
			FF := make([][]float64, h.nStates)
			for i := 0; i < h.nStates; i++ {
				i0 := i*h.stride + offset
				if i0+dim > len(raw) {
					return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractTransition"}, true}
				}
				FF[i] = raw[i0 : i0+dim]
			}
			return &QData{FF: FF}, nil
		}
		fstate, err := resolveState(filename, final, h)
		if err != nil {
			return nil, err
		}
		i0 := (fstate-1)*h.stride + offset
		if i0+dim > len(raw) {
			return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractTransition"}, true}
		}
		return &QData{F: raw[i0 : i0+dim]}, nil
	}
	return nil, unsupported(UnknownQuantity)
}

//resolveState turns a single-state selector into a 1-based index into the
//per-state table, range-checked against the header.
func resolveState(filename string, s State, h etranHeader) (int, error) {
	n := s.Index
	if s.IsCurrent() {
		n = h.root
	}
	if n < 1 || n > h.nStates {
		return 0, Error{ErrIndexOutOfRange, MissingState, filename, []string{"resolveState"}, true}
	}
	return n, nil
}

//extractState handles single-state quantities. Checkpoints only store these
//for the state the calculation ran on, so a specific-index selector must
//match that state (when the file says which one it was).
func extractState(filename string, q QLabel, kword string, blocks map[string]*Block) (*QData, error) {
	b := blocks[kword]
	fin := q.State.Final
	curr := fin.IsCurrent()
	if !curr && fin.kind == stIndex {
		if h, err := etranScalars(filename, blocks); err == nil {
			curr = fin.Index == h.root
		} else {
			//no per-state table in the file: whatever is stored belongs
			//to the only computed state
			curr = true
		}
	}
	switch q.Tag {
	case Energy:
		if q.DOrd > 0 {
			return &QData{F: b.R}, nil
		}
		if fin.IsAll() {
			h, err := etranScalars(filename, blocks)
			if err != nil {
				return nil, err
			}
			F := make([]float64, h.nStates)
			for i := 0; i < h.nStates; i++ {
				if i*h.stride >= len(b.R) {
					return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractState"}, true}
				}
				F[i] = b.R[i*h.stride]
			}
			return &QData{F: F}, nil
		}
		if fin.IsCurrent() || fin.IsGround() {
			return &QData{F: b.R}, nil
		}
		//a specific excited state reads its slot of the per-state table
		h, err := etranScalars(filename, blocks)
		if err != nil {
			return nil, err
		}
		fstate, err := resolveState(filename, fin, h)
		if err != nil {
			return nil, err
		}
		i0 := (fstate - 1) * h.stride
		if i0 >= len(b.R) {
			return nil, Error{ErrIndexOutOfRange, MissingState, filename, []string{"extractState"}, true}
		}
		return &QData{F: []float64{b.R[i0]}}, nil
	case DipStr, RotStr:
		if !fin.single() {
			//strengths per electronic state would come from the per-state
			//table, whose strength slots are not decoded yet
			return nil, Error{ErrNotImplemented, "Per-state strengths", filename, []string{"extractState"}, true}
		}
		if !curr {
			return nil, Error{ErrIndexOutOfRange, "Strengths are stored for the computed state only", filename, []string{"extractState"}, true}
		}
		key := kwNVib
		if q.Level == LevelAnharm {
			key = kwNVibAnh
		}
		nb, ok := blocks[key]
		if !ok || len(nb.I) == 0 {
			return nil, Error{ErrMissingKeyword, "Missing necessary dimension: " + key, filename, []string{"extractState"}, true}
		}
		n := nb.I[0]
		offset := offDipStr * n
		if q.Tag == RotStr {
			offset = offRotStr * n
		}
		if offset+n > len(b.R) {
			return nil, Error{ErrIndexOutOfRange, "Strength table shorter than expected", filename, []string{"extractState"}, true}
		}
		return &QData{F: b.R[offset : offset+n]}, nil
	case RotToInput:
		if len(b.R) < 9 {
			return nil, Error{ErrSizeMismatch, WrongFormat + " for " + kword, filename, []string{"extractState"}, true}
		}
		return &QData{F: b.R[:9]}, nil
	case TrToInput:
		if len(b.R) < 9 {
			return nil, Error{ErrSizeMismatch, WrongFormat + " for " + kword, filename, []string{"extractState"}, true}
		}
		return &QData{F: b.R[9:]}, nil
	case ElecDip, MagDip:
		if !curr {
			return nil, Error{ErrIndexOutOfRange, "Moments are stored for the computed state only", filename, []string{"extractState"}, true}
		}
		return &QData{F: b.R}, nil
	case FDFreq:
		if !curr {
			return nil, Error{ErrIndexOutOfRange, "Frequencies are stored for the computed state only", filename, []string{"extractState"}, true}
		}
		if q.Opt.Freq == 0 {
			return &QData{F: b.R}, nil
		}
		if q.Opt.Freq > len(b.R) {
			return nil, Error{ErrIndexOutOfRange, "Incident frequency index out of range", filename, []string{"extractState"}, true}
		}
		return &QData{F: []float64{b.R[q.Opt.Freq-1]}}, nil
	case FDAlpha, FDOptRot, FDAlphaW0, FDDQPol, 305, 306:
		if !curr {
			return nil, Error{ErrIndexOutOfRange, "FD tensors are stored for the computed state only", filename, []string{"extractState"}, true}
		}
		return extractFreqDep(filename, q, kword, blocks)
	}
	return nil, unsupported(UnknownQuantity)
}

//extractFreqDep slices a frequency-dependent property block into its
//per-incident-frequency groups. The per-frequency length is the tensor size
//(9 for the one-frequency families, 18 for the two-frequency ones) times 1
//for the property itself or 3*natoms for its Cartesian derivatives; the
//number of stored frequencies follows from the block length.
func extractFreqDep(filename string, q QLabel, kword string, blocks map[string]*Block) (*QData, error) {
	var nder int
	switch q.DOrd {
	case 0:
		nder = 1
	case 1:
		nb, ok := blocks[kwNAtoms]
		if !ok || len(nb.I) == 0 {
			return nil, Error{ErrMissingKeyword, "Missing number of atoms", filename, []string{"extractFreqDep"}, true}
		}
		nder = 3 * nb.I[0]
	default:
		return nil, Error{ErrIndexOutOfRange, "Unsupported derivative order", filename, []string{"extractFreqDep"}, true}
	}
	var mult int
	switch q.Tag {
	case FDAlpha, FDOptRot, FDAlphaW0:
		mult = 9
	case FDDQPol, 305, 306:
		mult = 18
	default:
		return nil, unsupported(UnknownQuantity)
	}
	raw := blocks[kword].R
	lqty := mult * nder
	ndata := len(raw) / lqty //the block is assumed correctly built
	if q.Opt.Freq == 0 {
		FF := make([][]float64, ndata)
		for i := 0; i < ndata; i++ {
			FF[i] = raw[i*lqty : (i+1)*lqty]
		}
		return &QData{FF: FF}, nil
	}
	if q.Opt.Freq > ndata {
		return nil, Error{ErrIndexOutOfRange, "Incident frequency index out of range", filename, []string{"extractFreqDep"}, true}
	}
	return &QData{F: raw[(q.Opt.Freq-1)*lqty : q.Opt.Freq*lqty]}, nil
}

// GetData reads and extracts the quantities for each given label, in one
// batched pass over the file. It is the top of the quantity machinery: label
// resolution, block reading and extraction all happen inside, and their
// finer error kinds are collapsed into two coarse outcomes, an unsupported
// quantity (ErrUnsupportedQuantity) or data absent from this particular file
// (ErrMissingData). Callers needing the distinction work below this facade,
// with Keywords, ReadData and the extraction entry points. No quantity is
// ever silently substituted: every unmodeled or missing case surfaces as one
// of the two errors.
func GetData(f *FChk, labels ...QLabel) (map[QLabel]*QData, error) {
	if f == nil {
		return nil, Error{ErrArgument, "FChk handle expected", "", []string{"GetData"}, true}
	}
	if len(labels) == 0 {
		return nil, nil
	}
	mainKw := make(map[QLabel]string, len(labels))
	seen := make(map[string]bool)
	var all []string
	for _, q := range labels {
		kw, list, err := Keywords(q)
		if err != nil {
			return nil, facadeErr(f.filename, err)
		}
		mainKw[q] = kw
		for _, k := range list {
			if !seen[k] {
				seen[k] = true
				all = append(all, k)
			}
		}
	}
	blocks, err := f.ReadData(false, all...)
	if err != nil {
		return nil, facadeErr(f.filename, err)
	}
	out := make(map[QLabel]*QData, len(labels))
	for _, q := range labels {
		d, err := extract(f.filename, q, mainKw[q], blocks)
		if err != nil {
			return nil, facadeErr(f.filename, err)
		}
		out[q] = d
	}
	return out, nil
}

//facadeErr collapses the package's fine error kinds into the two coarse
//outcomes of the quantity facade.
func facadeErr(filename string, err error) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	switch e.kind {
	case ErrUnsupportedQuantity, ErrNotImplemented:
		return Error{ErrUnsupportedQuantity, "Unsupported quantities: " + e.message, filename, []string{"GetData"}, true}
	case ErrMissingKeyword, ErrIndexOutOfRange:
		return Error{ErrMissingData, "Missing data in checkpoint: " + e.message, filename, []string{"GetData"}, true}
	}
	return errDecorate(err, "GetData")
}
