package reports

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Table); err != nil {
		return err
	}
	return cw.Error()
}

func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &r.Headers); err != nil {
		return err
	}
	for i, cells := range r.Table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func FileName(t Type, ext string) string {
	return string(t) + "-report." + ext
}
