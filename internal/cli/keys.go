package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmed-hajnasr/do-me/internal/action"
	"github.com/mmed-hajnasr/do-me/internal/keymap"
)

type keyBinding struct {
	Mode   string `json:"mode" yaml:"mode"`
	Keys   string `json:"keys" yaml:"keys"`
	Action string `json:"action" yaml:"action"`
}

func newKeysCmd(app *App) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the effective keybindings (defaults plus config.toml)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := app.cfg.Keymap()
			if err != nil {
				return writeErr(cmd, err)
			}
			modes := keymap.Modes
			if mode != "" {
				m, err := keymap.ParseMode(mode)
				if err != nil {
					return writeErr(cmd, err)
				}
				modes = []keymap.Mode{m}
			}

			out := []keyBinding{}
			for _, m := range modes {
				for _, b := range km.Bindings(m) {
					out = append(out, keyBinding{
						Mode:   m.String(),
						Keys:   b.Sequence.String(),
						Action: action.Name(b.Action),
					})
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Only this mode (global|navigation|menu)")
	return cmd
}
