package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lesezeit/internal/content"
	"github.com/abhisek/lesezeit/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lesezeit",
	Short: "Read German texts and practice their words",
	Long: "Lesezeit is a terminal reader for German learners: read short texts, look up and save words, " +
		"then practice them with cards, gap sentences, word order and spoken answers.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LESEZEIT_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Directory of markdown texts (overrides LESEZEIT_CONTENT env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(textsCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LESEZEIT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadLibrary loads texts from --content, then LESEZEIT_CONTENT, falling
// back to the embedded library.
func loadLibrary(cmd *cobra.Command) (*content.Library, error) {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		dir = os.Getenv("LESEZEIT_CONTENT")
	}
	if dir == "" {
		return content.Default()
	}
	lib, err := content.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load texts from %s: %w", dir, err)
	}
	return lib, nil
}
