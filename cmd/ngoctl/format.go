package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// inr formats rupee amounts with Indian digit grouping.
var inr = message.NewPrinter(language.MustParse("en-IN"))

func formatINR(amount float64) string {
	return inr.Sprintf("₹%.2f", amount)
}

func formatAmount(amount float64, currency string) string {
	if currency == "" || strings.EqualFold(currency, "INR") {
		return formatINR(amount)
	}
	return inr.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printDonations(w io.Writer, donations []models.Donation) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDONOR\tCOUNTRY\tAMOUNT\tINR\tFIRC\tDATE")
	for _, d := range donations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.DonorName, orDash(d.DonorCountry),
			formatAmount(d.Amount, d.Currency), formatINR(d.ConvertedAmount),
			orDash(d.FIRC), d.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func printGrants(w io.Writer, grants []models.Grant) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tAMOUNT\tDEADLINE\tSTATUS")
	for _, g := range grants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Title, g.Category, formatINR(g.Amount), g.Deadline, g.Status)
	}
	return tw.Flush()
}

func printApplications(w io.Writer, apps []models.GrantApplication) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPROJECT\tAPPLICANT\tCATEGORY\tREQUESTED\tSTATUS")
	for _, a := range apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.ProjectTitle, a.ApplicantName, a.Category, formatINR(a.RequestedAmount), a.Status)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
