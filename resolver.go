/*
 * resolver.go, part of gofchk.
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

//The keywords under which checkpoints store each quantity.
const (
	kwNAtoms    = "Number of atoms"
	kwNVib      = "Number of Normal Modes"
	kwNVibAnh   = "Anharmonic Number of Normal Modes"
	kwAtMass    = "Real atomic weights"
	kwAtNum     = "Atomic numbers"
	kwAtCrd     = "Current cartesian coordinates"
	kwVibModes  = "Vib-Modes"
	kwVibE2     = "Vib-E2"
	kwVibE2Anh  = "Anharmonic Vib-E2"
	kwRoute     = "Route"
	kwVersion   = "Gaussian Version"
	kwETranScal = "ETran scalars"
	kwETranVals = "ETran state values"
	kwSCFEnergy = "SCF Energy"
	kwTotEnergy = "Total Energy"
	kwCartGrad  = "Cartesian Gradient"
	kwCartFC    = "Cartesian Force Constants"
	kwDipole    = "Dipole Moment"
	kwDipDeriv  = "Dipole Derivatives"
	kwAAT       = "AAT"
	kwRotTr     = "RotTr to input orientation"
	kwFDFreq    = "Frequencies for FD properties"
	kwFDFreqD   = "Frequencies for DFD properties"
	kwAlpha     = "Alpha(-w,w)"
	kwAlphaD    = "Derivative Alpha(-w,w)"
	kwFDOptRot  = "FD Optical Rotation Tensor"
	kwFDOptRotD = "Derivative FD Optical Rotation Tensor"
	kwDQPol     = "D-Q polarizability"
	kwDQPolD    = "Derivative D-Q polarizability"
)

func notImplemented(what string) error {
	return Error{ErrNotImplemented, what + " not yet handled", "", []string{"Keywords"}, true}
}

func unsupported(what string) error {
	return Error{ErrUnsupportedQuantity, what, "", []string{"Keywords"}, true}
}

// Keywords resolves a quantity label into the keyword of the block holding
// it, plus the ordered list of keywords to read: the primary one first, then
// the auxiliary header keywords the extraction will need. Tags not modeled
// fail as ErrUnsupportedQuantity; tags modeled but deliberately unfinished
// fail as ErrNotImplemented. No guess is ever substituted for either.
func Keywords(q QLabel) (string, []string, error) {
	var kw string
	var aux []string
	switch q.Tag {
	case NAtoms:
		kw = kwNAtoms
	case NVib:
		kw = kwNVib
	case AtMass:
		kw = kwAtMass
	case AtNum:
		kw = kwAtNum
	case MolSym:
		return "", nil, notImplemented("Molecular symmetry")
	case AtCrd:
		kw = kwAtCrd
	case HessVec:
		kw = kwVibModes
	case HessVal:
		kw = kwVibE2
	case SWOpt:
		kw = kwRoute
	case SWVer:
		kw = kwVersion
	case FCData:
		return "", nil, notImplemented("Franck-Condon data")
	case VPTData:
		return "", nil, notImplemented("VPT data")
	case DipStr, RotStr:
		aux = append(aux, kwETranScal)
		if q.State.Final.single() && !q.State.Pair {
			if q.Level == LevelAnharm {
				kw = kwVibE2Anh
				aux = append(aux, kwNVibAnh)
			} else {
				kw = kwVibE2
				aux = append(aux, kwNVib)
			}
		} else {
			kw = kwETranVals
		}
	default:
		if q.State.Pair {
			//Electronic transition: everything lives in the per-state
			//table, whose layout comes from the scalars header block.
			kw = kwETranVals
			aux = append(aux, kwETranScal)
			if q.Tag == Energy && q.DOrd == 0 {
				aux = append(aux, kwSCFEnergy)
			}
		} else {
			var err error
			kw, aux, err = stateKeyword(q)
			if err != nil {
				return "", nil, err
			}
		}
	}
	if kw == "" {
		return "", nil, unsupported(UnknownQuantity)
	}
	return kw, append([]string{kw}, aux...), nil
}

//stateKeyword handles the single-state quantities of the numeric catalog.
func stateKeyword(q QLabel) (string, []string, error) {
	fin := q.State.Final
	switch q.Tag {
	case Energy:
		switch q.DOrd {
		case 0:
			switch {
			case fin.IsCurrent():
				return kwTotEnergy, nil, nil
			case fin.IsGround():
				return kwSCFEnergy, nil, nil
			case fin.IsAll(), fin.single():
				//excited-state energies sit in the per-state table
				return kwETranVals, []string{kwETranScal}, nil
			}
		case 1:
			if q.cartesian() && fin.single() {
				return kwCartGrad, nil, nil
			}
		case 2:
			if q.cartesian() && fin.single() {
				return kwCartFC, nil, nil
			}
		}
		return "", nil, unsupported("Only Cartesian energy derivatives up to order 2 are stored")
	case RotToInput, TrToInput:
		return kwRotTr, nil, nil
	case ElecDip:
		if fin.single() {
			switch q.DOrd {
			case 0:
				return kwDipole, nil, nil
			case 1:
				return kwDipDeriv, nil, nil
			}
		}
		return "", nil, unsupported("Only Cartesian dipole derivatives up to order 1 are stored")
	case MagDip:
		if fin.single() {
			switch q.DOrd {
			case 0:
				return "", nil, unsupported("Magnetic dipole not available in checkpoints")
			case 1:
				return kwAAT, nil, nil
			}
		}
		return "", nil, unsupported("Only atomic axial tensors are stored for the magnetic dipole")
	case 50, 91, ElecQuad, 104, 105, 106, 107:
		return "", nil, notImplemented("Higher moments")
	case 201, 202, 203, 204, 205, 206, 207, 208, 209:
		return "", nil, notImplemented("Static response tensors")
	case FDFreq:
		if !fin.single() {
			return "", nil, unsupported("Incident frequencies not available")
		}
		if q.DOrd == 0 {
			return kwFDFreq, nil, nil
		}
		return kwFDFreqD, []string{kwNAtoms}, nil
	case FDAlpha:
		if fin.single() {
			switch q.DOrd {
			case 0:
				return kwAlpha, nil, nil
			case 1:
				return kwAlphaD, []string{kwNAtoms}, nil
			}
		}
		return "", nil, unsupported("Only orders 0 and 1 of alpha(-w,w) are stored")
	case FDOptRot:
		if fin.single() {
			switch q.DOrd {
			case 0:
				return kwFDOptRot, nil, nil
			case 1:
				return kwFDOptRotD, []string{kwNAtoms}, nil
			}
		}
		return "", nil, unsupported("Only orders 0 and 1 of the optical rotation tensor are stored")
	case FDAlphaW0:
		return "", nil, unsupported("Alpha(w,0) not available")
	case FDDQPol:
		if fin.single() {
			switch q.DOrd {
			case 0:
				return kwDQPol, nil, nil
			case 1:
				return kwDQPolD, []string{kwNAtoms}, nil
			}
		}
		return "", nil, unsupported("Only orders 0 and 1 of the D-Q polarizability are stored")
	case 305, 306:
		return "", nil, notImplemented("Magnetic FD tensors")
	}
	return "", nil, unsupported(UnknownQuantity)
}
