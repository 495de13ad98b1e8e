package helper

import (
	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

// ExcelFirstRow reads the header row of an uploaded workbook so the column
// mapper can be shown before the file is ingested.
func ExcelFirstRow(filePath string) ([]string, error) {
	xlFile, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx.OpenFile")
	}

	if len(xlFile.Sheets) == 0 {
		return nil, errors.New("no sheets found")
	}

	sheet := xlFile.Sheets[0]
	if len(sheet.Rows) == 0 {
		return []string{}, nil
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		value := cell.String()
		if value == "" {
			break
		}
		headers = append(headers, value)
	}

	return headers, nil
}
