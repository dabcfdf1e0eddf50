/*
 * doc.go, part of gofchk.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package fchk reads and selectively rewrites Gaussian formatted checkpoint
(fchk) files.

An fchk file is a fixed-format text file storing named data blocks, scalars
or arrays of integers, reals or characters. This package gives access to them
at two levels:


	**Keyword level**

    A one-pass scan indexes every keyword in the file together with its data
	type, element count and byte offset, so later reads seek directly to the
	blocks of interest.

    Reads can also run without the index, matching keywords sequentially
	while streaming the file.

    Blocks can be written back, preserving the surrounding file. Arrays may
	grow or shrink; the rewrite re-chunks the data in the fixed column
	format of the file.

    Checkpoints compressed with gzip or zstd can be read transparently.


	**Quantity level**

    Callers ask for physically meaningful quantities (energies, geometries,
	normal modes, transition moments, frequency-dependent response tensors)
	through abstract quantity labels. The package resolves each label to the
	keyword(s) that store it, slices the raw blocks accordingly and returns
	typed data.

    Hessian eigenvectors can be retrieved with or without mass-weighting,
	as gonum matrices in a modes-by-coordinates layout.

The package is low level by design: it checks the file format, not the
physical soundness of a query. It is meant to be wrapped by higher-level code
in charge of that.
*/
package fchk
