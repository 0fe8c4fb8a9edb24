package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

var foreignCSVHeader = []string{"Donor", "Country", "Amount", "Currency", "Converted Amount (INR)", "Purpose", "FIRC", "Date"}

// WriteForeignDonationsCSV writes one row per donation. Callers pass the
// foreign subset only.
func WriteForeignDonationsCSV(w io.Writer, foreign []models.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(foreignCSVHeader); err != nil {
		return err
	}
	for _, d := range foreign {
		date := ""
		if !d.CreatedAt.IsZero() {
			date = d.CreatedAt.Format(expiryDateLayout)
		}
		row := []string{
			d.DonorName,
			d.DonorCountry,
			formatAmount(d.Amount),
			d.Currency,
			formatAmount(d.ConvertedAmount),
			d.PurposeTag,
			d.FIRC,
			date,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
