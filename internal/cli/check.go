package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/config"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// NewCheckCmd создаёт команду проверки control-файла без запуска.
//
// Разбирает файл и валидирует структуру графа; к платформе не
// обращается, поэтому годится для CI.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check CONTROL_FILE",
		Short: "Validate a control file without executing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := telemetry.SetupLogger()

			defs, err := config.Load(args[0])
			if err != nil {
				return err
			}

			graph, err := config.BuildGraph(defs, platform.Noop{}, config.BuildOptions{
				Logger: logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tasks\n", graph.Size())
			for _, id := range graph.TaskIDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", id, graph.Task(id).Kind())
			}
			return nil
		},
	}
}
