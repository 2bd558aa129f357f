package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <key>",
	Short: "Look up a single key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}
		v, ok := m.Find([]byte(args[0]))
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "not found")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
