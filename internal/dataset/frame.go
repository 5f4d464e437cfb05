package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Frame is a column-named table of string cells, as read from CSV.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV loads a headered CSV file into a Frame.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	return &Frame{Columns: records[0], Rows: records[1:]}, nil
}

// WriteCSV persists the frame as a headered CSV file.
func (f *Frame) WriteCSV(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(f.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range f.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Col returns the index of the named column, or -1.
func (f *Frame) Col(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// LoadMatrix reads a fully numeric CSV and splits out the label column.
// Labels are expected to be 0/1.
func LoadMatrix(path, label string) (X [][]float64, y []int, columns []string, err error) {
	frame, err := ReadCSV(path)
	if err != nil {
		return nil, nil, nil, err
	}
	labelIdx := frame.Col(label)
	if labelIdx < 0 {
		return nil, nil, nil, fmt.Errorf("label column %s not found in %s", label, path)
	}

	for i, c := range frame.Columns {
		if i != labelIdx {
			columns = append(columns, c)
		}
	}

	X = make([][]float64, 0, len(frame.Rows))
	y = make([]int, 0, len(frame.Rows))
	for rowIdx, row := range frame.Rows {
		features := make([]float64, 0, len(row)-1)
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("row %d column %s: %w", rowIdx+1, frame.Columns[i], err)
			}
			if i == labelIdx {
				y = append(y, int(v))
			} else {
				features = append(features, v)
			}
		}
		X = append(X, features)
	}
	return X, y, columns, nil
}
