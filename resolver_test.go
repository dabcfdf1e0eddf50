/*
 * resolver_test.go, part of gofchk.
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

import "testing"

func TestStateSelectors(Te *testing.T) {
	var zero State
	if zero.IsSet() {
		Te.Error("the zero state selector should select nothing")
	}
	if !StateN(0).IsGround() || StateN(1).IsGround() {
		Te.Error("wrong ground-state detection")
	}
	if !Current.IsCurrent() || !AllStates.IsAll() {
		Te.Error("wrong special selectors")
	}
	if !StateN(3).single() || AllStates.single() {
		Te.Error("wrong single-state detection")
	}
}

func TestKeywords(Te *testing.T) {
	cases := []struct {
		name string
		q    QLabel
		kw   string
		list []string
		kind Kind //0 means no error expected
	}{
		{"natoms", QLabel{Tag: NAtoms}, kwNAtoms, []string{kwNAtoms}, 0},
		{"masses", QLabel{Tag: AtMass}, kwAtMass, []string{kwAtMass}, 0},
		{"geometry", QLabel{Tag: AtCrd, State: StateRef(Current)}, kwAtCrd, []string{kwAtCrd}, 0},
		{"version", QLabel{Tag: SWVer}, kwVersion, []string{kwVersion}, 0},
		{"current energy", QLabel{Tag: Energy, State: StateRef(Current)}, kwTotEnergy, []string{kwTotEnergy}, 0},
		{"ground energy", QLabel{Tag: Energy, State: StateRef(StateN(0))}, kwSCFEnergy, []string{kwSCFEnergy}, 0},
		{"all energies", QLabel{Tag: Energy, State: StateRef(AllStates)}, kwETranVals,
			[]string{kwETranVals, kwETranScal}, 0},
		{"gradient", QLabel{Tag: Energy, DOrd: 1, State: StateRef(Current)}, kwCartGrad, []string{kwCartGrad}, 0},
		{"hessian", QLabel{Tag: Energy, DOrd: 2, DCrd: "X", State: StateRef(Current)}, kwCartFC, []string{kwCartFC}, 0},
		{"internal gradient", QLabel{Tag: Energy, DOrd: 1, DCrd: "Q", State: StateRef(Current)},
			"", nil, ErrUnsupportedQuantity},
		{"transition energy", QLabel{Tag: Energy, State: Transition(StateN(0), StateN(2))}, kwETranVals,
			[]string{kwETranVals, kwETranScal, kwSCFEnergy}, 0},
		{"transition dipole", QLabel{Tag: ElecDip, State: Transition(StateN(0), StateN(1))}, kwETranVals,
			[]string{kwETranVals, kwETranScal}, 0},
		{"dipole strengths", QLabel{Tag: DipStr, State: StateRef(Current), Level: LevelHarm}, kwVibE2,
			[]string{kwVibE2, kwETranScal, kwNVib}, 0},
		{"anharmonic strengths", QLabel{Tag: RotStr, State: StateRef(Current), Level: LevelAnharm}, kwVibE2Anh,
			[]string{kwVibE2Anh, kwETranScal, kwNVibAnh}, 0},
		{"per-state strengths", QLabel{Tag: DipStr, State: StateRef(AllStates)}, kwETranVals,
			[]string{kwETranVals, kwETranScal}, 0},
		{"static magnetic dipole", QLabel{Tag: MagDip, State: StateRef(Current)}, "", nil, ErrUnsupportedQuantity},
		{"axial tensors", QLabel{Tag: MagDip, DOrd: 1, State: StateRef(Current)}, kwAAT, []string{kwAAT}, 0},
		{"static quadrupole", QLabel{Tag: ElecQuad, State: StateRef(Current)}, "", nil, ErrNotImplemented},
		{"alpha", QLabel{Tag: FDAlpha, State: StateRef(Current)}, kwAlpha, []string{kwAlpha}, 0},
		{"alpha derivatives", QLabel{Tag: FDAlpha, DOrd: 1, State: StateRef(Current)}, kwAlphaD,
			[]string{kwAlphaD, kwNAtoms}, 0},
		{"alpha(w,0)", QLabel{Tag: FDAlphaW0, State: StateRef(Current)}, "", nil, ErrUnsupportedQuantity},
		{"magnetic FD tensor", QLabel{Tag: 305, State: StateRef(Current)}, "", nil, ErrNotImplemented},
		{"molecular symmetry", QLabel{Tag: MolSym}, "", nil, ErrNotImplemented},
		{"unknown tag", QLabel{Tag: 999, State: StateRef(Current)}, "", nil, ErrUnsupportedQuantity},
	}
	for _, c := range cases {
		kw, list, err := Keywords(c.q)
		if c.kind != 0 {
			if !IsKind(err, c.kind) {
				Te.Errorf("%s: expected error kind %d, got %v", c.name, c.kind, err)
			}
			continue
		}
		if err != nil {
			Te.Errorf("%s: %v", c.name, err)
			continue
		}
		if kw != c.kw {
			Te.Errorf("%s: wrong keyword %q, want %q", c.name, kw, c.kw)
		}
		if len(list) != len(c.list) {
			Te.Errorf("%s: wrong keyword list %v, want %v", c.name, list, c.list)
			continue
		}
		for i := range list {
			if list[i] != c.list[i] {
				Te.Errorf("%s: keyword %d is %q, want %q", c.name, i, list[i], c.list[i])
			}
		}
	}
}
