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

/*Package stf implements the simple trajectory format, a compressed text trajectory
format that is easy to read and write from any language. electrolens reads it frame by
frame to build molecular data for framed views.

Format

An STF file is compressed, by default with z-standard (zstd). The last letter of the file
name selects the compression: 's' or 'f' (".stf") for zstd, 'z' (".stz") for gzip, 'r' for
raw deflate and 'l' for lzw.

The file has a header starting in the first line, and ending with a line that starts with
the characters "**" followed by one or more spaces, and the number of atoms per frame.
Each line of the header is a pair key=value. The precision (an integer greater than 0) is
given with the key "prec"; the default is 2.

After the header, the file has one line per atom, per frame. Each line contains 3 integers,
the x, y and z cartesian coordinates in A multiplied by 10 to the power of the precision, and
rounded.

Each frame ends with a line starting with the character "*", optionally followed by
whitespace and the 9 components of the box vectors, in A.
*/
package stf
