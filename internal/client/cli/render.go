package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/savingsadmin/internal/client/models"
)

var errUsage = errors.New("usage")

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printProfile(w io.Writer, p *models.Profile) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", p.Role)
	fmt.Fprintf(tw, "Active:\t%s\n", yesNo(bool(p.IsActive)))
	if p.CreatedAt != nil {
		fmt.Fprintf(tw, "Member since:\t%s\n", p.CreatedAt)
	}
	tw.Flush()
}

func printUsers(w io.Writer, users []models.AdminUser) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tJOINED")
	for _, u := range users {
		status := "active"
		if !u.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, status, u.CreatedAt)
	}
	tw.Flush()
}

func printAnalytics(w io.Writer, a *models.Analytics) {
	if a == nil {
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Total users:\t%d\n", a.TotalUsers)
	fmt.Fprintf(tw, "Savings entries:\t%d\n", a.TotalSavingsEntries)
	fmt.Fprintf(tw, "Total saved:\tRs. %.2f\n", a.TotalSavingsAmount)
	fmt.Fprintf(tw, "Average per entry:\tRs. %.2f\n", a.AveragePerEntry)
	tw.Flush()
}

func printSettings(w io.Writer, s *models.Settings) {
	if s == nil {
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Site name:\t%s\n", s.SiteName)
	fmt.Fprintf(tw, "Allow signups:\t%s\n", yesNo(s.SignupsAllowed()))
	fmt.Fprintf(tw, "Token expiry:\t%d min\n", s.TokenExpiry())
	tw.Flush()
}

func printLogs(w io.Writer, logs []models.LogEntry) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No logs found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tLEVEL\tMESSAGE\tMETA")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.CreatedAt, strings.ToUpper(l.Level), l.Message, l.Meta)
	}
	tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
