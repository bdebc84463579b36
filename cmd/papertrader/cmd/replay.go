package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/papertrader/internal/replay"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run scripted or dated decisions against a bar file",
	Long: `Apply the commands in a script file, one per line, as if they were
typed at the play prompt, then print the result. Lines starting with '#'
are comments.

With --decisions, read a CSV of date,action rows instead and trade each
on the bar with that date. A fills CSV written by the journal works as
a decisions file; it is read in full before the new journal opens.

Examples:
  papertrader replay --bars data/aapl.csv --script moves.txt
  papertrader replay --config ashare.yaml --script moves.txt --no-journal
  papertrader replay --bars data/aapl.csv --decisions fills.csv --close-end`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

var (
	replayFlags         sessionFlags
	replayScriptPath    string
	replayDecisionsPath string
	replayCloseEnd      bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayFlags.register(replayCmd.Flags())
	replayCmd.Flags().StringVarP(&replayScriptPath, "script", "s", "", "command script")
	replayCmd.Flags().StringVar(&replayDecisionsPath, "decisions", "", "CSV of date,action rows")
	replayCmd.Flags().BoolVar(&replayCloseEnd, "close-end", false, "with --decisions, sell remaining shares on the last day")
	replayCmd.MarkFlagsOneRequired("script", "decisions")
	replayCmd.MarkFlagsMutuallyExclusive("script", "decisions")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	replayFlags.apply(cfg)

	// Decisions are read before the journal opens: the journal may write
	// to the very file being replayed.
	var decisions []replay.Decision
	if replayDecisionsPath != "" {
		if decisions, err = replay.ReadFile(replayDecisionsPath); err != nil {
			return fmt.Errorf("read decisions: %w", err)
		}
	}

	sess, closeFn, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	out := cmd.OutOrStdout()
	if replayDecisionsPath != "" {
		fmt.Fprintf(out, "Replaying decisions %s on %s\n", replayDecisionsPath, sess.Series().Instrument())
		res, err := replay.Apply(cmd.Context(), sess, decisions, replay.Options{CloseAtEnd: replayCloseEnd})
		if err != nil {
			return fmt.Errorf("replay error: %w", err)
		}
		fmt.Fprintf(out, "  Applied: %d  Rejected: %d\n", res.Applied, res.Rejected)
		for _, line := range sess.ActivityLines() {
			fmt.Fprintf(out, "  %s\n", line)
		}
	} else {
		script, err := os.Open(replayScriptPath)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer script.Close()

		fmt.Fprintf(out, "Replaying %s on %s\n", replayScriptPath, sess.Series().Instrument())
		err = runConsole(sess, script, out, consoleOptions{
			Window: cfg.Simulation.Window,
			Echo:   true,
		})
		if err != nil {
			return fmt.Errorf("replay error: %w", err)
		}
	}

	sim.PrintReport(out, sess.FinalReport(), sess.Series().Instrument(), sess.Currency())
	fmt.Fprintf(out, "Session: %s\n", sess.ID())
	return nil
}
