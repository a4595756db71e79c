package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/registry"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newDashboardCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show collection counts and the first entries of each collection",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				sum := s.Summary(limit)
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), sum)
				}
				writeSummary(cmd.OutOrStdout(), sum)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", registry.DashboardLimit, "entries shown per collection")
	return cmd
}

func writeSummary(w io.Writer, sum registry.Summary) {
	writeTable(w, []string{"Collection", "Count"}, [][]string{
		{"Course Types", fmt.Sprint(sum.CourseTypeCount)},
		{"Courses", fmt.Sprint(sum.CourseCount)},
		{"Course Offerings", fmt.Sprint(sum.OfferingCount)},
		{"Student Registrations", fmt.Sprint(sum.RegistrationCount)},
	}, "")

	section := func(title string, rows [][]string) {
		heading.Fprintf(w, "\nRecent %s\n", title)
		if len(rows) == 0 {
			fmt.Fprintln(w, "None yet")
			return
		}
		for _, row := range rows {
			fmt.Fprintf(w, "  %s  %s\n", row[0], row[1])
		}
	}
	section("Course Types", namedRows(sum.CourseTypes))
	section("Courses", namedRows(sum.Courses))

	offerings := make([][]string, 0, len(sum.Offerings))
	for _, o := range sum.Offerings {
		offerings = append(offerings, []string{o.ID, o.Name})
	}
	section("Course Offerings", offerings)

	regs := make([][]string, 0, len(sum.Registrations))
	for _, r := range sum.Registrations {
		regs = append(regs, []string{r.StudentName, r.CourseOfferingName})
	}
	section("Student Registrations", regs)
}

func namedRows[T registry.Named](items []T) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.GetID(), item.GetName()})
	}
	return rows
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report references left dangling by deletes",
		Long: "Deletes never cascade. check lists offerings whose course type or course\n" +
			"is gone and registrations whose offering is gone.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				refs := s.Check()
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), refs)
				}
				if len(refs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No dangling references")
					return nil
				}
				rows := make([][]string, 0, len(refs))
				for _, r := range refs {
					rows = append(rows, []string{collectionTitle(r.Collection), r.ID, r.Name, r.Field, r.Target})
				}
				writeTable(cmd.OutOrStdout(), []string{"Collection", "ID", "Name", "Field", "Missing ID"}, rows, "")
				return nil
			})
		},
	}
}

func collectionTitle(key string) string {
	switch key {
	case types.KeyCourseOfferings:
		return "Course Offerings"
	case types.KeyStudentRegistrations:
		return "Student Registrations"
	default:
		return key
	}
}
