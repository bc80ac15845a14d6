/*
 * errors.go, part of electrolens.
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

package mol

import "fmt"

//CError is the error type for this package. It implements TrajError.
type CError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	format   string
	deco     []string
	critical bool
}

func (err CError) Error() string {
	if err.filename == "" {
		return err.message
	}
	return fmt.Sprintf("%s file %s error: %s", err.format, err.filename, err.message)
}

//Decorate Adds new information to the error
func (err CError) Decorate(dec string) []string {
	//Even though the receiver is not a pointer, the deco slice shares
	//its backing array with the original error.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file to which the failing operation was associated
func (err CError) FileName() string { return err.filename }

//Format returns the format of the file associated to the error
func (err CError) Format() string { return err.format }

//Critical returns true if the error is critical, false otherwise
func (err CError) Critical() bool { return err.critical }

//errDecorate decorates err with the caller's name if it implements Error,
//and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//lastFrameError implements LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
	format   string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return E.format }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//NewLastFrameError returns the error that trajectories give when
//there are no more frames to read.
func NewLastFrameError(filename, format, caller string) LastFrameError {
	return lastFrameError{fileName: filename, format: format, deco: []string{caller}}
}

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the file or frame"
)

//UnableToOpen is the message for files that can't be opened.
const UnableToOpen = "Unable to open file"
