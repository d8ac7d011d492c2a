package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadCSV loads a CSV file into a Table. The first record is the header;
// short rows are padded so every column stays row-aligned.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: unable to read header: %w", path, err)
	}

	t := New(header...)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: unable to read row: %w", path, err)
		}
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		} else if len(record) > len(header) {
			record = record[:len(header)]
		}
		if err := t.AppendRow(record); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}

// WriteCSV saves a Table to a CSV file, header first, columns in table order.
func WriteCSV(t *Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for row := 0; row < t.RowCount(); row++ {
		record := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			record[i] = t.Cell(row, c)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
