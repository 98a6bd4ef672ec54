package bulkimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Logical field names the pipeline understands. Header cells are normalized
// before matching, so "First Name", "first_name" and "FIRST-NAME" all map to
// FieldFirstName. Unknown headers are carried along untouched and simply
// ignored by the validator.
const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldMiddleName     = "middle_name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldBirthDate      = "birth_date"
	FieldGender         = "gender"
	FieldMaritalStatus  = "marital_status"
	FieldEmploymentType = "employment_type"
	FieldDepartment     = "department"
	FieldPosition       = "position"
	FieldSalary         = "salary"
	FieldHireDate       = "hire_date"
)

const (
	mimeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS       = "application/vnd.ms-excel"
	mimeCSV       = "text/csv"
	mimeCSVAlt    = "application/csv"
	mimeTextPlain = "text/plain"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Row is one data line of the uploaded file: an untyped string-keyed field
// map plus its 1-based physical ordinal (header row = 1, first data row = 2).
// Rows stay untyped until the validator has run so a missing column surfaces
// as a reported field error instead of a crash.
type Row struct {
	Ordinal int
	Fields  map[string]string
}

// Get returns the trimmed value of a logical field.
func (r Row) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Parser turns an uploaded tabular file into an ordered row sequence.
type Parser struct {
	MaxSize int64
	MaxRows int
}

func NewParser(maxSize int64, maxRows int) *Parser {
	return &Parser{MaxSize: maxSize, MaxRows: maxRows}
}

// Parse decodes the file into rows, preserving physical order. The declared
// MIME type is checked first, backed by content sniffing, so no row is read
// from a file of an unsupported format.
func (p *Parser) Parse(data []byte, declaredMIME string) ([]Row, error) {
	if p.MaxSize > 0 && int64(len(data)) > p.MaxSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes", len(data))
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	kind, err := p.resolveFormat(data, declaredMIME)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch kind {
	case mimeXLSX:
		records, err = readExcel(data)
	default:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	rows, err := p.toRows(records)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (p *Parser) resolveFormat(data []byte, declaredMIME string) (string, error) {
	declared := normalizeMIME(declaredMIME)
	switch declared {
	case mimeXLSX:
		return mimeXLSX, nil
	case mimeCSV, mimeCSVAlt:
		return mimeCSV, nil
	case "", mimeTextPlain, "application/octet-stream", mimeXLS:
		// Browsers are sloppy about upload MIME types; fall back to
		// content sniffing before rejecting. The legacy Excel type lands
		// here too: some clients slap it on anything with an .xls-ish
		// extension, including plain CSV, and a genuine binary .xls
		// workbook is unreadable for us either way.
	default:
		return "", errors.Wrap(ErrUnsupportedFormat, declared)
	}

	detected := mimetype.Detect(data)
	switch {
	case detected.Is(mimeXLSX):
		return mimeXLSX, nil
	case detected.Is(mimeCSV), detected.Is(mimeTextPlain):
		return mimeCSV, nil
	default:
		return "", errors.Wrap(ErrUnsupportedFormat, detected.String())
	}
}

func normalizeMIME(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if idx := strings.Index(raw, ";"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	return raw
}

func readCSV(data []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(data))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	return records, nil
}

func readExcel(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	return records, nil
}

func (p *Parser) toRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(records[0]))
	for i, cell := range records[0] {
		headers[i] = normalizeHeader(cell)
	}

	var rows []Row
	for idx, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		fields := make(map[string]string, len(headers))
		for col, header := range headers {
			if header == "" {
				continue
			}
			if col < len(record) {
				fields[header] = record[col]
			} else {
				fields[header] = ""
			}
		}
		rows = append(rows, Row{
			// Physical position in the file, 1-based with the header at 1.
			Ordinal: idx + 2,
			Fields:  fields,
		})
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	if p.MaxRows > 0 && len(rows) > p.MaxRows {
		return nil, errors.Wrapf(ErrTooManyRows, "%d rows", len(rows))
	}
	return rows, nil
}

func normalizeHeader(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.ReplaceAll(name, ".", "_")
	return strings.Trim(name, "_")
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
