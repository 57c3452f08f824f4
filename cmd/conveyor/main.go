// Conveyor — оркестратор пайплайна задач поверх удалённой
// платформы выполнения.
//
// Использование:
//
//	conveyor run [flags] CONTROL_FILE
//	conveyor check CONTROL_FILE
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "conveyor",
		Short:         "Conveyor — dependency-graph pipeline orchestrator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		cli.NewRunCmd(),
		cli.NewCheckCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
