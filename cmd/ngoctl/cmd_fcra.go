package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
)

var exportOut string

var fcraCmd = &cobra.Command{
	Use:   "fcra",
	Short: "FCRA compliance views",
}

var fcraSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show registration countdown and FIRC compliance",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := app.fcra.Summary(cmd.Context())
		printSummary(cmd, s)
		return nil
	},
}

var fcraDonationsCmd = &cobra.Command{
	Use:   "donations",
	Short: "List foreign donations",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := app.fcra.ForeignDonations(cmd.Context())
		if list.Degraded {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: backend unavailable, showing no donations")
		}
		return printDonations(cmd.OutOrStdout(), list.Donations)
	},
}

var fcraExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export foreign donations as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := app.fcra.ExportForeignDonations(cmd.Context(), w); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if exportOut != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", exportOut)
		}
		return nil
	},
}

func printSummary(cmd *cobra.Command, s dto.FcraSummary) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Registration:      %s (%s)\n", s.Registration.RegistrationNumber, s.Registration.Status)
	if s.Expired {
		fmt.Fprintf(w, "Expiry:            %s, expired\n", s.Registration.ExpiryDate)
	} else {
		fmt.Fprintf(w, "Expiry:            %s, %d days left [%s]\n", s.Registration.ExpiryDate, s.DaysRemaining, s.ExpiryBand)
	}
	fmt.Fprintf(w, "Foreign donations: %d of %d\n", s.ForeignDonations, s.TotalDonations)
	fmt.Fprintf(w, "Missing FIRC:      %d\n", s.MissingFIRC)
	fmt.Fprintf(w, "Compliance:        %s (%.1f%%)\n", s.ComplianceStatus, s.ComplianceScore)
	fmt.Fprintf(w, "Foreign received:  %s\n", formatINR(s.ForeignReceivedINR))
	if s.Degraded {
		fmt.Fprintln(w, "warning: backend unavailable, donation figures are empty")
	}
}

func init() {
	fcraExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write CSV to this file instead of stdout")

	fcraCmd.AddCommand(fcraSummaryCmd)
	fcraCmd.AddCommand(fcraDonationsCmd)
	fcraCmd.AddCommand(fcraExportCmd)
}
