/*
 * doc.go, part of electrolens.
 *
 * Copyright 2024 The electrolens authors
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

/*Package mol provides the atom, topology and molecule structures that electrolens
converts into renderer configurations, together with readers for the XYZ (including
extended XYZ) and PDB formats.

A Molecule holds one or more frames of coordinates, so it can be used as a
trajectory (it implements Traj). Trajectory formats that are read from disk
frame by frame, such as the one in electrolens/traj/stf, implement the same
interface.

The lattice of periodic systems is kept in a Cell, which provides the lattice
constants and the normalized lattice vectors the renderer needs.
*/
package mol
