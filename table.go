/*
 * table.go, part of electrolens.
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
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

//compressed returns true if the name of the file indicates gzip or zstd compression.
//The renderer can't read those, so their contents need to be inlined.
func compressed(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".gz") || strings.HasSuffix(p, ".zst")
}

//zstdReadCloser closes the zstd decoder together with the file.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (Z zstdReadCloser) Close() error {
	Z.Decoder.Close()
	return Z.f.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (G gzipReadCloser) Close() error {
	err := G.Reader.Close()
	if err2 := G.f.Close(); err == nil {
		err = err2
	}
	return err
}

//openTable opens path for reading, decompressing it if its name ends in .gz or .zst.
func openTable(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open data file %s", path)
	}
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ".gz"):
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "can't decompress %s", path)
		}
		return gzipReadCloser{r, f}, nil
	case strings.HasSuffix(p, ".zst"):
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "can't decompress %s", path)
		}
		return zstdReadCloser{r, f}, nil
	}
	return f, nil
}

//readHeader returns the first row of the CSV file at path.
func readHeader(path string) ([]string, error) {
	in, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "can't read the header of %s", path)
	}
	return header, nil
}

//checkHeader returns an error if any of columns is missing in header.
func checkHeader(caller, path string, header, columns []string) error {
	for _, c := range columns {
		if !isInString(header, c) {
			return newError(caller, "column %q not found in the header of %s: %v", c, path, header)
		}
	}
	return nil
}

//readRecords reads the CSV file at path (possibly compressed) and returns one Record per row
//with the given columns, plus the atom column if the file has it.
func readRecords(path string, columns []string) ([]Record, error) {
	const funcname = "readRecords"
	in, err := openTable(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "can't read the header of %s", path)
	}
	header = copyColumns(header)
	if err := checkHeader(funcname, path, header, columns); err != nil {
		return nil, err
	}
	keys := columns
	if isInString(header, AtomColumn) {
		keys = withAtom(columns)
	}
	index := make([]int, len(keys))
	for i, k := range keys {
		index[i] = indexString(header, k)
	}
	records := make([]Record, 0)
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d", path, line)
		}
		rec := make(Record, len(keys))
		for i, k := range keys {
			rec[k] = cellValue(row[index[i]])
		}
		records = append(records, rec)
	}
	return records, nil
}

//writeRecords writes records as CSV to path, with the given columns as header.
//Values missing in a record are written as empty cells.
func writeRecords(path string, columns []string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "can't create data file %s", path)
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return errors.Wrapf(err, "can't write to %s", path)
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, c := range columns {
			row[i] = formatValue(rec[c])
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return errors.Wrapf(err, "can't write to %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.Wrapf(err, "can't write to %s", path)
	}
	return errors.Wrapf(f.Close(), "can't close %s", path)
}

//ReadColumn returns the numeric values of column in the CSV file at path, which can be
//gzip or zstd compressed. Cells that are not numbers are skipped.
func ReadColumn(path, column string) ([]float64, error) {
	records, err := readRecords(path, []string{column})
	if err != nil {
		return nil, errDecorate(err, "ReadColumn")
	}
	ret := make([]float64, 0, len(records))
	for _, rec := range records {
		if f, ok := rec[column].(float64); ok {
			ret = append(ret, f)
		}
	}
	return ret, nil
}
