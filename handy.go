/*
 * handy.go, part of electrolens.
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

import (
	"path/filepath"
	"strconv"
	"strings"
)

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	return indexString(container, test) >= 0
}

//indexString returns the position of test in container, or -1 if it is not there.
func indexString(container []string, test string) int {
	for i, v := range container {
		if test == v {
			return i
		}
	}
	return -1
}

//withAtom returns a copy of columns with "atom" appended if it is not already present.
func withAtom(columns []string) []string {
	ret := make([]string, len(columns), len(columns)+1)
	copy(ret, columns)
	if !isInString(ret, AtomColumn) {
		ret = append(ret, AtomColumn)
	}
	return ret
}

//absSlash returns the absolute version of path, with forward slashes as separators,
//which is what the renderer expects in dataFilename.
func absSlash(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(filepath.ToSlash(abs), "\\", "/"), nil
}

//cellValue turns a CSV cell into a record value: a float64 if it can be parsed as one,
//the string itself otherwise.
func cellValue(s string) interface{} {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}

//formatValue is the inverse of cellValue.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}
