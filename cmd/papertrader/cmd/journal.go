package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the SQLite journal",
	Long: `Query and display records from the SQLite journal.

Subcommands:
  sessions - List recorded sessions, newest first
  fills    - List the decisions of a session
  fill     - Show a single decision by ID

Examples:
  papertrader journal sessions
  papertrader journal fills <session-id>
  papertrader journal fill <fill-id>`,
}

var journalSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Args:  cobra.NoArgs,
	RunE:  runJournalSessions,
}

var journalFillsCmd = &cobra.Command{
	Use:   "fills <session-id>",
	Short: "List the decisions of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalFills,
}

var journalFillCmd = &cobra.Command{
	Use:   "fill <fill-id>",
	Short: "Show a single decision",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalFill,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalSessionsCmd)
	journalCmd.AddCommand(journalFillsCmd)
	journalCmd.AddCommand(journalFillCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", defaultDBPath, "path to SQLite journal DB (default: journal.db_path from --config)")
}

const defaultDBPath = "./papertrader.sqlite"

// openJournalDB opens the --db path, or the config's journal.db_path when
// --db was not given.
func openJournalDB(cmd *cobra.Command, flagPath string) (*journal.SQLite, string, error) {
	path := flagPath
	if !cmd.Flags().Changed("db") {
		cfg, err := loadConfig()
		if err != nil {
			return nil, "", err
		}
		if cfg.Journal.DBPath != "" {
			path = cfg.Journal.DBPath
		}
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, "", fmt.Errorf("open db: %w", err)
	}
	return j, path, nil
}

func runJournalSessions(cmd *cobra.Command, args []string) error {
	j, _, err := openJournalDB(cmd, journalDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	all, err := j.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tINSTRUMENT\tCREATED\tFILLS\tPROFIT\tROI%")
	for _, s := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			s.SessionID, s.Instrument, s.Created.Format("2006-01-02 15:04"),
			s.Fills, s.Profit.StringFixed(2), s.ROIPercent.StringFixed(2))
	}
	return tw.Flush()
}

func runJournalFills(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	if !id.Valid(sessionID) {
		return fmt.Errorf("invalid session id %q", sessionID)
	}

	j, _, err := openJournalDB(cmd, journalDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListFills(sessionID)
	if err != nil {
		return fmt.Errorf("query fills: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatFillsOrg(recs))
	return nil
}

func runJournalFill(cmd *cobra.Command, args []string) error {
	fillID := args[0]
	if !id.Valid(fillID) {
		return fmt.Errorf("invalid fill id %q", fillID)
	}

	j, _, err := openJournalDB(cmd, journalDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetFill(fillID)
	if err != nil {
		return fmt.Errorf("get fill: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatFillOrg(rec))
	return nil
}
