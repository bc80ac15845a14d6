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

package electrolens

import "fmt"

//Error is the error type for the validation and conversion failures of this package.
//The deco slice keeps the names of the functions the error went through.
type Error struct {
	message string
	deco    []string
}

//Error returns the error message
func (E *Error) Error() string {
	return "electrolens: " + E.message
}

//Decorate adds dec to the decoration slice of the error, and returns the resulting slice.
//An empty string adds nothing.
func (E *Error) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

//newError returns an *Error with a printf-style message, decorated with the caller name.
func newError(caller, format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...), deco: []string{caller}}
}

//decorator is implemented by the errors of this package and of the mol and stf packages.
type decorator interface {
	Decorate(string) []string
}

//errDecorate adds caller to err's decoration if err supports it, and returns err.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(decorator); ok {
		e.Decorate(caller)
	}
	return err
}
