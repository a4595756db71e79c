package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registrar/internal/registry"
)

// dateLayout renders registration dates in tables.
const dateLayout = "2006-01-02 15:04"

var heading = color.New(color.FgCyan, color.Bold)

// noArgs and exactArgs wrap cobra's validators so argument mistakes exit
// with the user error code.
func noArgs(cmd *cobra.Command, args []string) error {
	return usageArgs(cobra.NoArgs)(cmd, args)
}

func exactArgs(n int) cobra.PositionalArgs {
	return usageArgs(cobra.ExactArgs(n))
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError{fmt.Errorf("marshal JSON: %w", err)}
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeTable renders rows under header, or a placeholder line when there
// are no rows.
func writeTable(w io.Writer, header []string, rows [][]string, empty string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// confirmer returns the Confirmer for delete commands: --yes approves
// everything, otherwise the prompt is answered on stdin.
func confirmer(cmd *cobra.Command, yes bool) registry.Confirmer {
	if yes {
		return registry.AlwaysConfirm
	}
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, _ := in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// reportDelete prints the outcome of a delete command.
func reportDelete(cmd *cobra.Command, jsonMode bool, noun, id string, deleted bool) error {
	if jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": deleted})
	}
	if deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", noun, id)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
	}
	return nil
}
