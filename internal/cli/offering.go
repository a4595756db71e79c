package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/registry"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newOfferingCmd(a *app) *cobra.Command {
	group := &cobra.Command{
		Use:   "offering",
		Short: "Manage course offerings (course type and course pairs)",
		Args:  noArgs,
	}
	group.AddCommand(
		newOfferingAddCmd(a),
		newOfferingUpdateCmd(a),
		newOfferingDeleteCmd(a),
		newOfferingListCmd(a),
	)
	return group
}

func newOfferingAddCmd(a *app) *cobra.Command {
	var courseTypeID, courseID string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Pair a course type with a course",
		Example: "  registrar offering add --type <course-type-id> --course <course-id>",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				o, err := s.Offerings.Create(courseTypeID, courseID)
				if err != nil {
					return storeError(err)
				}
				return a.printOffering(cmd, "Added", o)
			})
		},
	}
	cmd.Flags().StringVar(&courseTypeID, "type", "", "course type ID")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID")
	return cmd
}

func newOfferingUpdateCmd(a *app) *cobra.Command {
	var courseTypeID, courseID string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Re-point an offering and refresh its name",
		Long: "Re-point an offering at a course type and course. Omitted flags keep\n" +
			"the current parent. The name and cached parent names are re-derived.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				current, err := s.Offerings.Get(args[0])
				if err != nil {
					return storeError(err)
				}
				if !cmd.Flags().Changed("type") {
					courseTypeID = current.CourseTypeID
				}
				if !cmd.Flags().Changed("course") {
					courseID = current.CourseID
				}
				if err := s.Offerings.BeginEdit(current.ID); err != nil {
					return storeError(err)
				}
				o, err := s.Offerings.CommitEdit(courseTypeID, courseID)
				if err != nil {
					return storeError(err)
				}
				return a.printOffering(cmd, "Updated", o)
			})
		},
	}
	cmd.Flags().StringVar(&courseTypeID, "type", "", "course type ID")
	cmd.Flags().StringVar(&courseID, "course", "", "course ID")
	return cmd
}

func newOfferingDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a course offering",
		Long:  "Delete a course offering. Registrations for it are kept; run check to list them.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				deleted, err := s.Offerings.Delete(args[0], confirmer(cmd, yes))
				if err != nil {
					return storeError(err)
				}
				return reportDelete(cmd, a.flags.jsonMode, "course offering", args[0], deleted)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func newOfferingListCmd(a *app) *cobra.Command {
	var courseTypeName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List course offerings",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				offerings := s.Offerings.FilterByCourseType(courseTypeName)
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), offerings)
				}
				writeOfferingTable(cmd, s, offerings)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&courseTypeName, "type", "", "only offerings whose course type name matches exactly")
	return cmd
}

// writeOfferingTable shows each offering with its cached name and the
// current names of its parents.
func writeOfferingTable(cmd *cobra.Command, s *registry.State, offerings []types.CourseOffering) {
	rows := make([][]string, 0, len(offerings))
	for _, o := range offerings {
		rows = append(rows, []string{
			o.ID,
			o.Name,
			s.CourseTypes.NameOf(o.CourseTypeID),
			s.Courses.NameOf(o.CourseID),
		})
	}
	writeTable(cmd.OutOrStdout(), []string{"ID", "Name", "Course Type", "Course"}, rows, "No course offerings yet")
}

func (a *app) printOffering(cmd *cobra.Command, verb string, o types.CourseOffering) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), o)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s course offering %q (%s)\n", verb, o.Name, o.ID)
	return nil
}
