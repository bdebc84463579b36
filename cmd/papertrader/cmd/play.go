package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Trade a bar file interactively",
	Long: `Start a session on a bar file and read commands from stdin.

Type "help" at the prompt for the command list.

Examples:
  papertrader play --bars data/aapl.csv
  papertrader play --config ashare.yaml --from 2023-01-01`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var playFlags sessionFlags

func init() {
	rootCmd.AddCommand(playCmd)
	playFlags.register(playCmd.Flags())
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	playFlags.apply(cfg)

	sess, closeFn, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s: %s, %d days\n", sess.ID(), sess.Series().Instrument(), sess.Series().Len())
	fmt.Fprintln(out, `Type "help" for commands.`)

	return runConsole(sess, cmd.InOrStdin(), out, consoleOptions{
		Window: cfg.Simulation.Window,
		Prompt: true,
	})
}
