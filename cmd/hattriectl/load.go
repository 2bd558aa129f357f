package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loadInput string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load key\\tvalue entries into the store, creating it if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}

		in := os.Stdin
		if loadInput != "" {
			f, err := os.Open(loadInput)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		entries := readEntries(bufio.NewScanner(in))
		for k, v := range entries {
			if err := m.InsertOrAssign([]byte(k), v); err != nil {
				return fmt.Errorf("inserting %q: %w", k, err)
			}
		}
		logger.Infow("loaded entries", "count", len(entries), "size", m.Len())

		if err := saveStore(storePath, m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %d entries, store now holds %d keys\n", len(entries), m.Len())
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadInput, "input", "", "file to read key\\tvalue lines from (default stdin)")
	rootCmd.AddCommand(loadCmd)
}
