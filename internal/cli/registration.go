package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/registry"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newRegistrationCmd(a *app) *cobra.Command {
	group := &cobra.Command{
		Use:   "registration",
		Short: "Manage student registrations",
		Args:  noArgs,
	}
	group.AddCommand(
		newRegistrationAddCmd(a),
		newRegistrationUpdateCmd(a),
		newRegistrationDeleteCmd(a),
		newRegistrationListCmd(a),
		newRosterCmd(a),
		newTypesCmd(a),
	)
	return group
}

// registrationFlags binds the editable registration fields to flags.
func registrationFlags(cmd *cobra.Command, in *registry.RegistrationInput) {
	cmd.Flags().StringVar(&in.StudentName, "student", "", "student name")
	cmd.Flags().StringVar(&in.CourseOfferingID, "offering", "", "course offering ID")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number (optional)")
}

func newRegistrationAddCmd(a *app) *cobra.Command {
	var in registry.RegistrationInput
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a student for a course offering",
		Example: "  registrar registration add --student Alice --offering <offering-id> --email alice@example.com",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				r, err := s.Registrations.Create(in)
				if err != nil {
					return storeError(err)
				}
				return a.printRegistration(cmd, "Registered", r)
			})
		},
	}
	registrationFlags(cmd, &in)
	return cmd
}

func newRegistrationUpdateCmd(a *app) *cobra.Command {
	var in registry.RegistrationInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a student registration",
		Long: "Change a student registration. Omitted flags keep their current value.\n" +
			"The cached offering name is refreshed; the registration date is kept.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				current, err := s.Registrations.Get(args[0])
				if err != nil {
					return storeError(err)
				}
				merged := registry.RegistrationInput{
					StudentName:      pickFlag(cmd, "student", in.StudentName, current.StudentName),
					CourseOfferingID: pickFlag(cmd, "offering", in.CourseOfferingID, current.CourseOfferingID),
					Email:            pickFlag(cmd, "email", in.Email, current.Email),
					Phone:            pickFlag(cmd, "phone", in.Phone, current.Phone),
				}
				if err := s.Registrations.BeginEdit(current.ID); err != nil {
					return storeError(err)
				}
				r, err := s.Registrations.CommitEdit(merged)
				if err != nil {
					return storeError(err)
				}
				return a.printRegistration(cmd, "Updated", r)
			})
		},
	}
	registrationFlags(cmd, &in)
	return cmd
}

// pickFlag returns value when the named flag was set and fallback otherwise.
func pickFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func newRegistrationDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student registration",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				deleted, err := s.Registrations.Delete(args[0], confirmer(cmd, yes))
				if err != nil {
					return storeError(err)
				}
				return reportDelete(cmd, a.flags.jsonMode, "student registration", args[0], deleted)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func newRegistrationListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every student registration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				regs := s.Registrations.List()
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), regs)
				}
				writeTable(cmd.OutOrStdout(),
					[]string{"ID", "Student", "Course Offering", "Email", "Phone", "Registered"},
					registrationRows(regs), "No student registrations yet")
				return nil
			})
		},
	}
}

func newRosterCmd(a *app) *cobra.Command {
	var courseTypeName string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show registered students grouped by course offering",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				rosters := s.Registrations.Rosters(courseTypeName)
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), rosterJSON(rosters))
				}
				out := cmd.OutOrStdout()
				if len(rosters) == 0 {
					fmt.Fprintln(out, "No course offerings match")
					return nil
				}
				for _, r := range rosters {
					heading.Fprintf(out, "%s\n", r.Offering.Name)
					fmt.Fprintln(out, r.CountLabel())
					if len(r.Registrations) > 0 {
						writeTable(out, []string{"Student", "Email", "Phone", "Registered"}, rosterRows(r.Registrations), "")
					}
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&courseTypeName, "type", "", "only offerings of this course type name")
	return cmd
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the course type names the roster can be filtered by",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				names := s.Registrations.CourseTypeFilterOptions()
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), names)
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

type rosterEntry struct {
	Offering      types.CourseOffering        `json:"offering"`
	Count         string                      `json:"count"`
	Registrations []types.StudentRegistration `json:"registrations"`
}

func rosterJSON(rosters []registry.Roster) []rosterEntry {
	out := make([]rosterEntry, 0, len(rosters))
	for _, r := range rosters {
		out = append(out, rosterEntry{Offering: r.Offering, Count: r.CountLabel(), Registrations: r.Registrations})
	}
	return out
}

func registrationRows(regs []types.StudentRegistration) [][]string {
	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, []string{
			r.ID, r.StudentName, r.CourseOfferingName, r.Email, r.Phone,
			r.RegistrationDate.Local().Format(dateLayout),
		})
	}
	return rows
}

func rosterRows(regs []types.StudentRegistration) [][]string {
	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, []string{r.StudentName, r.Email, r.Phone, r.RegistrationDate.Local().Format(dateLayout)})
	}
	return rows
}

func (a *app) printRegistration(cmd *cobra.Command, verb string, r types.StudentRegistration) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %q (%s)\n", verb, r.StudentName, r.CourseOfferingName, r.ID)
	return nil
}
