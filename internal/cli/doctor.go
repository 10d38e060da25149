package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmed-hajnasr/do-me/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail, fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the database and the order of every list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			report, err := s.Doctor(cmd.Context(), fix)
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{
				"db":        s.Path(),
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": meta,
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	cmd.Flags().BoolVar(&fix, "fix", false, "Renumber broken lists and clamp out-of-range priorities")
	return cmd
}
