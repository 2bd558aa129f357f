package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		st := m.Stats()
		fmt.Fprintf(out, "size: %d\n", st.Size)
		fmt.Fprintf(out, "max_key_size: %d\n", st.MaxKeySize)
		fmt.Fprintf(out, "burst_threshold: %d\n", st.BurstThreshold)
		fmt.Fprintf(out, "max_load_factor: %g\n", st.MaxLoadFactor)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
