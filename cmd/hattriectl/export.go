package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump every key\\tvalue pair in iteration order",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadStore(storePath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		count := 0
		m.ForEach(func(key []byte, value string) bool {
			fmt.Fprintf(out, "%s\t%s\n", key, value)
			count++
			return true
		})
		logger.Infow("exported store", "count", count)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "file to write to (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
