package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteOrdersCSV renders the order export with a header row. Dates are
// truncated to the day, totals stay in cents.
func WriteOrdersCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Order ID", "Customer Name", "Restaurant", "Date", "Total"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.OrderID, 10),
			row.CustomerName,
			row.RestaurantName,
			row.OrderDate.Format("2006-01-02"),
			strconv.FormatInt(row.Total, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
