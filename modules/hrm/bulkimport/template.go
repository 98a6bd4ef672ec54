package bulkimport

import (
	"bytes"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

const (
	templateDataSheet = "Employees"
	templateDocSheet  = "Columns"
)

// templateColumns is the canonical column order of the downloadable template.
// The header cells use the display form; the parser normalizes them back to
// the logical field names on upload.
var templateColumns = []struct {
	Field    string
	Header   string
	Required bool
	Note     string
}{
	{FieldFirstName, "First Name", true, "Given name"},
	{FieldLastName, "Last Name", true, "Family name"},
	{FieldMiddleName, "Middle Name", false, "Optional"},
	{FieldEmail, "Email", true, "Must be unique across the company"},
	{FieldPhone, "Phone", true, "Free-form"},
	{FieldBirthDate, "Birth Date", true, "YYYY-MM-DD"},
	{FieldGender, "Gender", true, "male or female"},
	{FieldMaritalStatus, "Marital Status", false, "single, married, divorced or widowed; defaults to single"},
	{FieldEmploymentType, "Employment Type", false, "full_time, part_time, contract or intern; defaults to full_time"},
	{FieldDepartment, "Department", true, "Must match an existing department name"},
	{FieldPosition, "Position", true, "Job title"},
	{FieldSalary, "Salary", false, "Decimal, e.g. 65000.00; defaults to 0"},
	{FieldHireDate, "Hire Date", true, "YYYY-MM-DD"},
}

var templateExampleRows = [][]string{
	{"Jane", "Doe", "", "jane.doe@example.com", "+1 555 0100", "1990-04-12", "female", "married", "full_time", "Engineering", "Backend Engineer", "95000.00", "2024-02-01"},
	{"John", "Smith", "Allen", "john.smith@example.com", "+1 555 0101", "1985-11-30", "male", "", "contract", "Sales", "Account Manager", "", "2024-03-15"},
}

// BuildTemplate produces the spreadsheet users fill in for a bulk upload: a
// data sheet pre-filled with two example rows and a second sheet documenting
// every column.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), templateDataSheet); err != nil {
		return nil, errors.Wrap(err, "rename data sheet")
	}
	if err := writeDataSheet(f); err != nil {
		return nil, err
	}
	if err := writeDocSheet(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "serialize template")
	}
	return buf.Bytes(), nil
}

func writeDataSheet(f *excelize.File) error {
	headers := make([]interface{}, len(templateColumns))
	for i, col := range templateColumns {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(templateDataSheet, "A1", &headers); err != nil {
		return errors.Wrap(err, "write header row")
	}

	for i, example := range templateExampleRows {
		cells := make([]interface{}, len(example))
		for j, v := range example {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "resolve example cell")
		}
		if err := f.SetSheetRow(templateDataSheet, cell, &cells); err != nil {
			return errors.Wrap(err, "write example row")
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	lastCol, err := excelize.CoordinatesToCellName(len(templateColumns), 1)
	if err != nil {
		return errors.Wrap(err, "resolve header range")
	}
	if err := f.SetCellStyle(templateDataSheet, "A1", lastCol, style); err != nil {
		return errors.Wrap(err, "apply header style")
	}
	return nil
}

func writeDocSheet(f *excelize.File) error {
	if _, err := f.NewSheet(templateDocSheet); err != nil {
		return errors.Wrap(err, "create documentation sheet")
	}
	header := []interface{}{"Column", "Required", "Notes"}
	if err := f.SetSheetRow(templateDocSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write documentation header")
	}
	for i, col := range templateColumns {
		required := "no"
		if col.Required {
			required = "yes"
		}
		row := []interface{}{col.Header, required, col.Note}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "resolve documentation cell")
		}
		if err := f.SetSheetRow(templateDocSheet, cell, &row); err != nil {
			return errors.Wrap(err, "write documentation row")
		}
	}
	return nil
}
