package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxtrigger/internal/console"
	"github.com/rustyeddy/fxtrigger/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the execution journal",
	Long: `Query execution records from the SQLite journal.

Subcommands:
  list     - List recent executions
  attempts - Show the fill-mode attempts of one execution

Examples:
  fxtrigger journal list -n 20
  fxtrigger journal attempts 01HX...`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent executions",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalAttemptsCmd = &cobra.Command{
	Use:   "attempts <exec-id>",
	Short: "Show the fill-mode attempts of one execution",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalAttempts,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalAttemptsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from settings)")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of executions to show (0 for all)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = settings.Journal.DBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no journal database: set journal.db_path or pass --db")
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListExecutions(journalLimit)
	if err != nil {
		return fmt.Errorf("list executions: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.RenderExecutions(recs))
	return nil
}

func runJournalAttempts(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	exec, err := j.GetExecution(args[0])
	if err != nil {
		return err
	}
	attempts, err := j.ListAttempts(exec.ExecID)
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s %s %.2f lots: %s\n", exec.ExecID, exec.Symbol, exec.Side, exec.LotSize, exec.Result)
	for _, a := range attempts {
		fmt.Fprintf(out, "  %d. %-6s retcode=%d accepted=%t %s\n", a.Seq, a.FillMode, a.Retcode, a.Accepted, a.Comment)
	}
	return nil
}
