// datatool manages the API's data files offline: backups, resets to the
// bundled defaults, and export/import of the full dataset.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"booklibrary/internal/config"
	"booklibrary/internal/store"
)

func main() {
	_ = godotenv.Load(".env.local")

	var env string
	var lifecycle *store.Lifecycle

	rootCmd := &cobra.Command{
		Use:   "datatool",
		Short: "Manage the book library's data files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lifecycle = store.NewLifecycle(config.New(env))
		},
	}
	rootCmd.PersistentFlags().StringVar(&env, "env", config.EnvDevelopment, "configuration profile (development, production, testing)")

	backupCmd := &cobra.Command{
		Use:   "backup [name]",
		Short: "Copy the current data files into a backup directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			result, err := lifecycle.Backup(name)
			if err != nil {
				return err
			}
			fmt.Printf("Backup created: %s\n", result.BackupPath)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the data files to the bundled defaults (backs up first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := lifecycle.ResetToDefaults()
			if err != nil {
				return err
			}
			fmt.Printf("Data reset to defaults. Previous data saved to %s\n", backup.BackupPath)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write books and authors to a timestamped export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := lifecycle.Export()
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d books and %d authors to %s\n",
				result.BooksCount, result.AuthorsCount, result.ExportFile)
			return nil
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the live data with the contents of an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := lifecycle.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d books and %d authors. Previous data saved to %s\n",
				result.ImportedBooks, result.ImportedAuthors, result.BackupPath)
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and file metadata for the live data",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := lifecycle.DataStats()
			if err != nil {
				return err
			}
			fmt.Printf("Books:   %d records, %d bytes\n", stats.Books.Count, stats.Books.SizeBytes)
			fmt.Printf("Authors: %d records, %d bytes\n", stats.Authors.Count, stats.Authors.SizeBytes)
			return nil
		},
	}

	rootCmd.AddCommand(backupCmd, resetCmd, exportCmd, importCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
