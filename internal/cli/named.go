package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/registry"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func newCourseTypeCmd(a *app) *cobra.Command {
	return newNamedCmd(a, "course-type", "Manage course types",
		func(s *registry.State) *registry.NamedStore[types.CourseType] { return s.CourseTypes })
}

func newCourseCmd(a *app) *cobra.Command {
	return newNamedCmd(a, "course", "Manage courses",
		func(s *registry.State) *registry.NamedStore[types.Course] { return s.Courses })
}

// newNamedCmd builds the add/update/delete/list group for a NamedStore.
func newNamedCmd[T registry.Named](a *app, use, short string, pick func(*registry.State) *registry.NamedStore[T]) *cobra.Command {
	group := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  noArgs,
	}

	group.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a " + use,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				store := pick(s)
				item, err := store.Create(args[0])
				if err != nil {
					return storeError(err)
				}
				return a.printNamed(cmd, store.Noun(), "Added", item)
			})
		},
	})

	group.AddCommand(&cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a " + use,
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				store := pick(s)
				if err := store.BeginEdit(args[0]); err != nil {
					return storeError(err)
				}
				item, err := store.CommitEdit(args[1])
				if err != nil {
					return storeError(err)
				}
				return a.printNamed(cmd, store.Noun(), "Updated", item)
			})
		},
	})

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + use,
		Long:  "Delete a " + use + ". Offerings that reference it are kept; run check to list them.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				store := pick(s)
				deleted, err := store.Delete(args[0], confirmer(cmd, yes))
				if err != nil {
					return storeError(err)
				}
				return reportDelete(cmd, a.flags.jsonMode, store.Noun(), args[0], deleted)
			})
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	group.AddCommand(del)

	group.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every " + use,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withState(func(s *registry.State) error {
				items := pick(s).List()
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), items)
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{item.GetID(), item.GetName()})
				}
				writeTable(cmd.OutOrStdout(), []string{"ID", "Name"}, rows, "No entries yet")
				return nil
			})
		},
	})

	return group
}

func (a *app) printNamed(cmd *cobra.Command, noun, verb string, item registry.Named) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %q (%s)\n", verb, noun, item.GetName(), item.GetID())
	return nil
}
