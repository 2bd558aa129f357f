package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var erasePrefixCmd = &cobra.Command{
	Use:   "erase-prefix <prefix>",
	Short: "Erase every key starting with prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}
		n := m.ErasePrefix([]byte(args[0]))
		if err := saveStore(storePath, m); err != nil {
			return err
		}
		logger.Infow("erased prefix", "prefix", args[0], "removed", n, "size", m.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d keys\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(erasePrefixCmd)
}
