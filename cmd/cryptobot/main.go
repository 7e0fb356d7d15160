package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marketscope/cryptobot/bot"
	chartcmder "github.com/marketscope/cryptobot/cmd/cryptobot/chart"
	servecmder "github.com/marketscope/cryptobot/cmd/cryptobot/serve"
)

func main() {
	root := &cobra.Command{
		Use:           "cryptobot",
		Short:         "Crypto research chat backend",
		Long:          "cryptobot serves an AI crypto research assistant with live market data and charts.",
		Version:       bot.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(servecmder.NewServeCmd())
	root.AddCommand(chartcmder.NewChartCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
