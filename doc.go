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

//Package electrolens turns atomic and molecular simulation data into the JSON configuration document
//read by the ElectroLens renderer.
//
//A Plot declares, once, which columns each data category has (MolecularDataProperties,
//SpatiallyResolvedDataProperties and, for time-dependent data, FramedDataProperties). Views hold
//the data for one visualized system. MolecularData and SpatiallyResolvedData wrap a single source:
//a CSV file (possibly gzip or zstd compressed), an in-memory numeric table, a structure read with
//the mol package, or a trajectory such as an STF file.
//
//Building the configuration validates every source against the declared properties and either
//inlines the records in the document or writes them to a companion CSV file referenced by path.
//The document can then be saved, or handed to a Launcher that shows it.
package electrolens
