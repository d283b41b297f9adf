package services

import (
	"strconv"
	"strings"

	"ecocart/internal/domain"
)

// OrdersCSV renders the admin order export. The format is fixed: a header
// row then one comma-joined row per order, values unquoted, so downstream
// spreadsheet imports see exactly six columns.
func OrdersCSV(orders []domain.Order) string {
	var b strings.Builder
	b.WriteString("Order ID,Date,Customer,Email,Total,Status\n")
	for _, o := range orders {
		row := []string{
			formatID(o.ID),
			o.Date,
			o.Name,
			o.Email,
			o.Subtotal.StringFixed(2),
			o.Status,
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
