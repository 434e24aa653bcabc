package importer

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sellout/reseller"
	"sellout/sales"
)

// csvWorkbook is a single-sheet workbook named after the file. UTF-8 and
// UTF-16 files with a byte order mark are both accepted.
type csvWorkbook struct {
	name string
	rows [][]string
}

func openCSV(path string) (*csvWorkbook, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, malformed("open csv file %s: %v", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	buffered := bufio.NewReader(transform.NewReader(file, decoder))

	comma, err := sniffDelimiter(buffered)
	if err != nil {
		return nil, malformed("read csv file %s: %v", path, err)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed("read csv row %d in %s: %v", len(rows)+1, path, err)
		}
		rows = append(rows, row)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &csvWorkbook{name: name, rows: rows}, nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the
// first line.
func sniffDelimiter(reader *bufio.Reader) (rune, error) {
	line, err := reader.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, err
	}
	first := string(line)
	if index := strings.IndexByte(first, '\n'); index >= 0 {
		first = first[:index]
	}

	best, bestCount := ',', strings.Count(first, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(first, string(candidate)); count > bestCount {
			best, bestCount = candidate, count
		}
	}
	return best, nil
}

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.name}
}

func (w *csvWorkbook) ReadSheet(name string, _ reseller.CellPolicy) (*sales.RawSheet, error) {
	if name != w.name {
		return nil, malformed("sheet %s not found in csv %s", name, w.name)
	}
	return &sales.RawSheet{Name: name, Rows: w.rows}, nil
}

func (w *csvWorkbook) Close() error {
	return nil
}
