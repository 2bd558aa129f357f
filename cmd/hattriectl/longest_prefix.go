package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var longestPrefixCmd = &cobra.Command{
	Use:   "longest-prefix <key>",
	Short: "Find the longest stored key that is a prefix of key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}
		c, ok := m.LongestPrefix([]byte(args[0]))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no match")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Key(), c.Value())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(longestPrefixCmd)
}
