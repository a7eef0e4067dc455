// Package source reads raw snapshots exported by the sync layer.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/flightdesk/internal/domain/model"
)

// File names of a CSV export directory.
const (
	PilotsFile   = "pilot_roster.csv"
	DronesFile   = "drone_fleet.csv"
	MissionsFile = "missions.csv"
)

// ErrEmptyDir is returned when a directory contains none of the export files.
var ErrEmptyDir = errors.New("no export files found")

// ReadRows parses CSV with a header row into rows keyed by lower-cased header.
// Short records are padded with empty values; extra cells are ignored.
func ReadRows(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows []model.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(model.Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
}

func readFile(path string) ([]model.Row, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	rows, err := ReadRows(f)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, true, nil
}

// ReadDir loads pilot_roster.csv, drone_fleet.csv and missions.csv from dir.
// Missing files yield empty collections; a directory with none of them is an error.
func ReadDir(dir string) (model.RawSnapshot, error) {
	var (
		raw   model.RawSnapshot
		found int
	)
	for _, f := range []struct {
		name string
		dst  *[]model.Row
	}{
		{PilotsFile, &raw.Pilots},
		{DronesFile, &raw.Drones},
		{MissionsFile, &raw.Missions},
	} {
		rows, ok, err := readFile(filepath.Join(dir, f.name))
		if err != nil {
			return model.RawSnapshot{}, err
		}
		if ok {
			found++
		}
		*f.dst = rows
	}
	if found == 0 {
		return model.RawSnapshot{}, fmt.Errorf("%s: %w", dir, ErrEmptyDir)
	}
	return raw, nil
}
