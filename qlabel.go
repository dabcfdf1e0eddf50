/*
 * qlabel.go, part of gofchk.
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

// Tag identifies a physical quantity, independently of how the file stores
// it. Positive values are the numeric property codes of the quantity-label
// scheme (1 energy, 101 electric dipole, 301 dynamic polarizability...);
// the named structural and vibrational quantities live in the negative
// space. The catalog is deliberately partial: tags can be modeled and still
// unfinished, and asking for them fails accordingly instead of guessing.
type Tag int

//Structural, software and vibrational quantities.
const (
	NAtoms  Tag = -(iota + 1) //number of atoms
	NVib                      //number of normal modes
	AtMass                    //atomic masses
	AtNum                     //atomic numbers
	MolSym                    //molecular symmetry
	HessVec                   //Hessian eigenvectors (normal modes)
	HessVal                   //Hessian eigenvalues
	SWOpt                     //computation options (route)
	SWVer                     //program version
	FCData                    //Franck-Condon data
	VPTData                   //vibrational perturbation theory data
	DipStr                    //dipole strengths
	RotStr                    //rotational strengths
)

//Property codes, as in the quantity-label scheme.
const (
	Energy     Tag = 1
	AtCrd      Tag = 2 //Cartesian coordinates
	RotToInput Tag = 92
	TrToInput  Tag = 93
	ElecDip    Tag = 101
	MagDip     Tag = 102
	ElecQuad   Tag = 103
	FDFreq     Tag = 300 //incident frequencies of FD properties
	FDAlpha    Tag = 301 //alpha(-w,w)
	FDOptRot   Tag = 302 //FD optical rotation tensor
	FDAlphaW0  Tag = 303 //alpha(w,0)
	FDDQPol    Tag = 304 //dipole-quadrupole polarizability
)

// Option carries the quantity-specific sub-option of a label. Only one of
// the fields is meaningful for a given tag: Gauge for electric transition
// dipoles ("len" or "vel"), Freq for frequency-dependent tensors (1-based
// index of the incident frequency, 0 selecting all of them).
type Option struct {
	Gauge string
	Freq  int
}

//Gauges of electric transition dipoles.
const (
	GaugeLen = "len"
	GaugeVel = "vel"
)

// Level is the level of theory a vibrational quantity was computed at.
type Level byte

const (
	LevelHarm   Level = 'H'
	LevelAnharm Level = 'A'
)

//internal state kinds
const (
	stNone int8 = iota
	stIndex
	stCurrent
	stAll
)

// State selects one electronic state: the ground state, the nth excited
// state, whichever state the calculation ran on ("current"), or all stored
// states at once. The zero value selects nothing.
type State struct {
	Index int //0 = ground, n = nth excited state
	kind  int8
}

var (
	// Current is the state the calculation was run on.
	Current = State{kind: stCurrent}
	// AllStates selects every state stored in the file.
	AllStates = State{kind: stAll}
)

// StateN returns the selector for the nth state, 0 being the ground state.
func StateN(n int) State { return State{Index: n, kind: stIndex} }

// IsSet returns whether the selector points at anything.
func (s State) IsSet() bool { return s.kind != stNone }

// IsGround returns whether s is the ground state.
func (s State) IsGround() bool { return s.kind == stIndex && s.Index == 0 }

// IsCurrent returns whether s is the current state.
func (s State) IsCurrent() bool { return s.kind == stCurrent }

// IsAll returns whether s selects all states.
func (s State) IsAll() bool { return s.kind == stAll }

//single returns whether s points at one concrete state, i.e. the current one
//or a specific index.
func (s State) single() bool { return s.kind == stIndex || s.kind == stCurrent }

// RefState selects which electronic state, or state-to-state transition, a
// quantity pertains to. For single-state quantities only Final is used; Pair
// marks a transition between Initial and Final. The zero value selects no
// reference state at all, which is what structural quantities use.
type RefState struct {
	Initial State
	Final   State
	Pair    bool
}

// StateRef wraps a single-state selector.
func StateRef(s State) RefState { return RefState{Final: s} }

// Transition returns the selector for a transition between two states.
func Transition(initial, final State) RefState {
	return RefState{Initial: initial, Final: final, Pair: true}
}

// QLabel describes one quantity of interest, independently of the file
// layout: what (Tag, Opt), which derivative (DOrd, DCrd), for which
// electronic state (State) and at which level of theory (Level). Labels are
// plain values: build one, pass it around, never mutate it. They are valid
// map keys.
type QLabel struct {
	Tag   Tag
	Opt   Option
	DOrd  int    //derivative order; 0 is the quantity itself
	DCrd  string //derivative coordinate system; "X" or "" for Cartesian
	State RefState
	Level Level
}

//cartesian returns whether the derivative coordinates of the label are
//Cartesian, the only frame stored in checkpoints.
func (q QLabel) cartesian() bool { return q.DCrd == "" || q.DCrd == "X" }
