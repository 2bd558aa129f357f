package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var importInput string

// importCmd merges a file in export's exact key\tvalue format into
// the store. Unlike load, every line must contain a tab; a malformed
// line fails the whole import rather than being treated as a bare key.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge a file produced by export into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}

		in := os.Stdin
		if importInput != "" {
			f, err := os.Open(importInput)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		sc := bufio.NewScanner(in)
		count := 0
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			idx := strings.IndexByte(line, '\t')
			if idx < 0 {
				return fmt.Errorf("import: line %q has no key/value separator", line)
			}
			if err := m.InsertOrAssign([]byte(line[:idx]), line[idx+1:]); err != nil {
				return err
			}
			count++
		}
		if err := sc.Err(); err != nil {
			return err
		}

		if err := saveStore(storePath, m); err != nil {
			return err
		}
		logger.Infow("imported entries", "count", count, "size", m.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries, store now holds %d keys\n", count, m.Len())
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importInput, "input", "", "file to read from (default stdin)")
	rootCmd.AddCommand(importCmd)
}
