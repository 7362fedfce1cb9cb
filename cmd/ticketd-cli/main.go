// ticketd CLI — инструмент командной строки для управления
// тикетами и категориями через HTTP API.
//
// Использование:
//
//	ticketd [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	ticket    Управление тикетами
//	category  Управление категориями
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mc-theer/ticketd/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "ticketd",
		Short:         "ticketd CLI — support ticket management tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewTicketCmd(clientFn, outputFn),
		cli.NewCategoryCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
