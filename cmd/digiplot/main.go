package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "digiplot",
		Short:        "DigiPlot property management data service",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("env-file", "", "load configuration from this .env file instead of ./.env")

	rootCmd.AddCommand(
		serveCmd(),
		seedCmd(),
		reportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
