package gridreader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// readCSV читает CSV с разделителем "," или ";" (определяется по первой строке).
// Все значения остаются текстом, пустые ячейки - nil.
func readCSV(r io.Reader) ([][]interface{}, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grid := make([][]interface{}, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}

		row := make([]interface{}, len(record))
		for i, v := range record {
			if v != "" {
				row[i] = v
			}
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func sniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}
	return ','
}
