package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dimtools/armortrim/internal/utils"
	"github.com/dimtools/armortrim/pkg/storage"
	"github.com/dimtools/armortrim/pkg/trimmer"
)

// resolveDBPath returns the absolute history database path from --dbpath.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("dbpath")
	return utils.GetAbsDBPath(raw)
}

// openDB opens the history database. With mustExist, a missing file is an
// error instead of being created.
func openDB(cmd *cobra.Command, mustExist bool) (*storage.DB, string, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mustExist {
			return nil, path, fmt.Errorf("database file not found: %s (run 'armortrim trim --save' first)", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, path, err
		}
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, path, err
	}
	return db, path, nil
}

func saveRun(cmd *cobra.Command, input string, res *trimmer.Result) (storage.Run, error) {
	db, path, err := openDB(cmd, false)
	if err != nil {
		return storage.Run{}, err
	}
	defer db.Close()

	lock, err := utils.NewDBLock(path)
	if err != nil {
		return storage.Run{}, err
	}
	if err := lock.Lock(); err != nil {
		return storage.Run{}, err
	}
	defer lock.Unlock()

	return db.SaveRun(cmd.Context(), input, res)
}

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Interact with the run history database",
}

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", dbPath)
		}

		// Check if sqlite3 is in PATH
		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the db shell")
		}

		fmt.Println("--> Database schema:")
		schemaCmd := exec.Command(sqlitePath, dbPath, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			utils.Log.Warnf("couldn't retrieve schema: %v", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, dbPath)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints how many pieces per slot were recommended for trimming across saved runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB(cmd, true)
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No data in the database to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "SLOT\tRUNS\tITEMS\t")

		var totalItems int
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t%d\t\n", s.Type, s.RunCount, s.ItemCount)
			totalItems += s.ItemCount
		}

		fmt.Fprintln(w, " \t \t \t")
		fmt.Fprintf(w, "TOTAL\t \t%d\t\n", totalItems)

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.AddCommand(statsCmd)
}
