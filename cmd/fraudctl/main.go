package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "fraudctl",
		Short:   "fraudctl - offline scoring and seeding for the fraud scoring API",
		Version: Version,
	}

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
