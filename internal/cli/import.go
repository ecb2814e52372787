package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/workitem"
)

func newImportCmd(a *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import tab-separated work items (use - for stdin)",
		Long: `Import tab-separated work items. The first line is a header and is
discarded. Columns: serial number, date of work, work by, type of work,
status, customer name, tracking number, customer number, sales price,
advance. Rows with fewer than ten fields or without a date, type, status
or customer name are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				items, skipped := workitem.ParseImport(text)
				fmt.Fprintf(out, "%d rows ready, %d skipped\n", len(items), skipped)
				return nil
			}

			rt, err := openRuntime(a, a.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.registry.Ensure(cmd.Context()); err != nil {
				return err
			}

			res, err := rt.items.Import(cmd.Context(), text)
			if res.Imported > 0 || res.Skipped > 0 {
				fmt.Fprintf(out, "Imported %d, skipped %d\n", res.Imported, res.Skipped)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report how many rows would be imported")
	return cmd
}

func readSource(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
