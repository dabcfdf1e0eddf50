/*
 * hessian.go, part of gofchk.
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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// HessSource supplies Hessian ingredients directly, bypassing the file for
// whichever fields are non-nil: the flat normal-mode vectors, the
// eigenvalues (cm-1), the atomic masses and the Cartesian force constants.
type HessSource struct {
	Vec  []float64
	Val  []float64
	Mass []float64
	FC   []float64
}

func (s *HessSource) vec() []float64 {
	if s == nil {
		return nil
	}
	return s.Vec
}

func (s *HessSource) val() []float64 {
	if s == nil {
		return nil
	}
	return s.Val
}

func (s *HessSource) mass() []float64 {
	if s == nil {
		return nil
	}
	return s.Mass
}

func (s *HessSource) fc() []float64 {
	if s == nil {
		return nil
	}
	return s.FC
}

// HessData returns the normal modes and/or their eigenvalues, building them
// when needed rather than only reading what is stored. Ingredients come from
// src when supplied there, from f otherwise. The returned modes are one row
// per mode, 3*natoms columns, rescaled to unit reduced mass when massWeight
// is true or to Cartesian displacement units when it is false. Eigenvalues
// pass through unmodified, in cm-1. When the stored mode vectors are absent
// the force constants and masses are fetched instead, but diagonalizing them
// is not implemented and fails as such.
func HessData(natoms int, getVec, getVal, massWeight bool, f *FChk, src *HessSource) (*mat.Dense, []float64, error) {
	if !getVec && !getVal {
		return nil, nil, Error{ErrArgument, NothingToDo, "", []string{"HessData"}, true}
	}
	if natoms <= 1 {
		return nil, nil, Error{ErrArgument, "More than one atom needed", "", []string{"HessData"}, true}
	}
	vec, val, mass, fc := src.vec(), src.val(), src.mass(), src.fc()
	needVec := getVec && vec == nil && fc == nil
	needVal := getVal && val == nil && fc == nil
	needMass := getVec && mass == nil
	if (needVec || needVal || needMass) && f == nil {
		return nil, nil, Error{ErrArgument, "Missing checkpoint file to extract necessary data", "", []string{"HessData"}, true}
	}
	if needVec {
		d, err := GetData(f, QLabel{Tag: HessVec})
		if err == nil {
			vec = d[QLabel{Tag: HessVec}].F
		} else if !IsKind(err, ErrMissingData) {
			return nil, nil, errDecorate(err, "HessData")
		} else {
			//fall back on the raw force constants, still making sure they
			//are there before reporting the missing diagonalization
			fcl := QLabel{Tag: Energy, DOrd: 2, DCrd: "X", State: StateRef(Current)}
			d, err = GetData(f, fcl)
			if err != nil {
				return nil, nil, errDecorate(err, "HessData")
			}
			fc = d[fcl].F
		}
	}
	var labels []QLabel
	if needVal && val == nil {
		labels = append(labels, QLabel{Tag: HessVal})
	}
	if needMass {
		labels = append(labels, QLabel{Tag: AtMass})
	}
	if len(labels) > 0 {
		d, err := GetData(f, labels...)
		if err != nil {
			return nil, nil, errDecorate(err, "HessData")
		}
		if needVal && val == nil {
			val = d[QLabel{Tag: HessVal}].F
		}
		if needMass {
			mass = d[QLabel{Tag: AtMass}].F
		}
	}
	var evec *mat.Dense
	fn := ""
	if f != nil {
		fn = f.filename
	}
	if getVec {
		if vec == nil {
			return nil, nil, Error{ErrNotImplemented, "Diagonalization", fn, []string{"HessData"}, true}
		}
		var err error
		evec, err = buildEvec(vec, mass, natoms, massWeight)
		if err != nil {
			return nil, nil, errDecorate(err, "HessData")
		}
	}
	if getVal && val == nil {
		return nil, nil, Error{ErrNotImplemented, "Diagonalization", fn, []string{"HessData"}, true}
	}
	if !getVal {
		val = nil
	}
	return evec, val, nil
}

//buildEvec reshapes the flat mode vectors into a (3*natoms) x modes matrix,
//one mode per column, normalizes each column by its reduced mass
//(sum over coordinates of mass*v^2, masses repeated for x, y and z) and
//returns the transpose, one mode per row.
func buildEvec(vec, mass []float64, natoms int, massWeight bool) (*mat.Dense, error) {
	n3 := 3 * natoms
	if len(vec)%n3 != 0 || len(vec) == 0 {
		return nil, Error{ErrSizeMismatch, "Mode vectors not divisible by the coordinate count", "", []string{"buildEvec"}, true}
	}
	if len(mass) < natoms {
		return nil, Error{ErrSizeMismatch, "Fewer masses than atoms", "", []string{"buildEvec"}, true}
	}
	nmodes := len(vec) / n3
	w := make([]float64, n3)
	for i := 0; i < natoms; i++ {
		w[3*i], w[3*i+1], w[3*i+2] = mass[i], mass[i], mass[i]
	}
	ev := mat.NewDense(n3, nmodes, nil)
	for j := 0; j < nmodes; j++ {
		for i := 0; i < n3; i++ {
			ev.Set(i, j, vec[j*n3+i])
		}
	}
	col := make([]float64, n3)
	sq := make([]float64, n3)
	for j := 0; j < nmodes; j++ {
		mat.Col(col, j, ev)
		copy(sq, col)
		floats.Mul(sq, col)
		redmas := floats.Dot(sq, w)
		norm := math.Sqrt(redmas)
		for i := 0; i < n3; i++ {
			if massWeight {
				ev.Set(i, j, col[i]/norm)
			} else {
				ev.Set(i, j, col[i]*math.Sqrt(w[i])/norm)
			}
		}
	}
	return mat.DenseCopyOf(ev.T()), nil
}
