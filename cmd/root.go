package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "idlegw",
	Short: "idlegw - Detect idle NAT and Internet Gateways",
	Long: `idlegw analyzes CloudWatch traffic metrics for every NAT Gateway and
Internet Gateway in a region and reports how much of the lookback window
each gateway spent completely idle, alongside its total traffic volume.`,
}

func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
