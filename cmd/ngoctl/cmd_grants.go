package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
)

var (
	grantFilter  dto.GrantFilter
	appFilter    dto.ApplicationFilter
	draft        dto.GrantApplicationDraft
	statusUpdate dto.UpdateStatusRequest
)

var grantsCmd = &cobra.Command{
	Use:   "grants",
	Short: "Grant catalog and applications",
}

var grantsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the grant catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printGrants(cmd.OutOrStdout(), app.catalog.List(grantFilter))
	},
}

var grantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List grant applications from the backend and local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := app.applications.Search(cmd.Context(), appFilter)
		if list.Degraded {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: one of the stores was unavailable, list may be partial")
		}
		return printApplications(cmd.OutOrStdout(), list.Applications)
	},
}

var grantsSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a grant application",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := app.applications.Submit(cmd.Context(), draft, dto.SubmitHooks{})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "submitted %s (%s)\n", res.Application.ID, res.Application.Status)
		return nil
	},
}

var grantsStatusCmd = &cobra.Command{
	Use:   "status <application-id> <status>",
	Short: "Change the review status of an application",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		statusUpdate.Status = args[1]
		updated, err := app.applications.UpdateStatus(cmd.Context(), args[0], statusUpdate)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.ID, updated.Status)
		return nil
	},
}

func init() {
	f := grantsCatalogCmd.Flags()
	f.StringVar(&grantFilter.Search, "search", "", "Match grant titles")
	f.StringVar(&grantFilter.Category, "category", "", "Only this category")
	f.Float64Var(&grantFilter.MinAmount, "min-amount", 0, "Minimum grant amount (INR)")
	f.Float64Var(&grantFilter.MaxAmount, "max-amount", 0, "Maximum grant amount (INR)")

	f = grantsListCmd.Flags()
	f.StringVar(&appFilter.Search, "search", "", "Match project, applicant or organization")
	f.StringVar(&appFilter.Status, "status", "", "Only this status")
	f.StringVar(&appFilter.Category, "category", "", "Only this category")

	f = grantsSubmitCmd.Flags()
	f.StringVar(&draft.ApplicantName, "name", "", "Applicant name")
	f.StringVar(&draft.ApplicantEmail, "email", "", "Applicant email")
	f.StringVar(&draft.ApplicantPhone, "phone", "", "Applicant phone")
	f.StringVar(&draft.OrganizationName, "org", "", "Organization name")
	f.StringVar(&draft.ProjectTitle, "title", "", "Project title")
	f.StringVar(&draft.ProjectDescription, "description", "", "Project description")
	f.Float64Var(&draft.RequestedAmount, "amount", 0, "Requested amount (INR)")
	f.StringVar(&draft.ProjectDuration, "duration", "", "Project duration")
	f.StringVar(&draft.Category, "category", "", "Grant category (default education)")
	f.StringVar(&draft.CreatedBy, "created-by", "", "Submitting user id")

	grantsStatusCmd.Flags().StringVar(&statusUpdate.ReviewNotes, "notes", "", "Review notes")

	grantsCmd.AddCommand(grantsCatalogCmd)
	grantsCmd.AddCommand(grantsListCmd)
	grantsCmd.AddCommand(grantsSubmitCmd)
	grantsCmd.AddCommand(grantsStatusCmd)
}
