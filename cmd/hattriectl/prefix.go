package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix <prefix>",
	Short: "List every key starting with prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}
		begin, end := m.PrefixRange([]byte(args[0]))
		count := 0
		for !begin.Equal(end) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", begin.Key(), begin.Value())
			begin.Advance()
			count++
		}
		logger.Infow("prefix range", "prefix", args[0], "matches", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefixCmd)
}
