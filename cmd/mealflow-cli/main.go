// Mealflow CLI — инструмент командной строки для анализа фото еды
// через HTTP API.
//
// Использование:
//
//	mealflow [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	analyze  Синхронный анализ фото
//	job      Управление фоновыми jobs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Mealflow/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "mealflow",
		Short:         "Mealflow CLI — meal photo analysis tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewAnalyzeCmd(clientFn, outputFn),
		cli.NewJobCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
