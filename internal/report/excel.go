package report

import (
	"io"

	"github.com/tealeg/xlsx"
)

// WriteExcel renders the report as a one-sheet workbook, header row
// plus one row per period and a totals row at the bottom.
func WriteExcel(w io.Writer, rep *Report) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Report")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"Period", "Orders", "Revenue", "Cost", "Profit"} {
		headerRow.AddCell().SetValue(h)
	}

	for _, row := range rep.Rows {
		r := sheet.AddRow()
		r.AddCell().SetValue(row.Period)
		r.AddCell().SetValue(row.OrdersCount)
		r.AddCell().SetValue(row.Revenue)
		r.AddCell().SetValue(row.Cost)
		r.AddCell().SetValue(row.Profit)
	}

	totalsRow := sheet.AddRow()
	totalsRow.AddCell().SetValue("Total")
	totalsRow.AddCell().SetValue(rep.Totals.OrdersCount)
	totalsRow.AddCell().SetValue(rep.Totals.Revenue)
	totalsRow.AddCell().SetValue(rep.Totals.Cost)
	totalsRow.AddCell().SetValue(rep.Totals.Profit)

	return file.Write(w)
}
