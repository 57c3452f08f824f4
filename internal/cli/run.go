package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/shaiso/Conveyor/internal/config"
	"github.com/shaiso/Conveyor/internal/journal"
	"github.com/shaiso/Conveyor/internal/orchestrator"
	"github.com/shaiso/Conveyor/internal/platform"
	"github.com/shaiso/Conveyor/internal/telemetry"
)

// NewRunCmd создаёт команду запуска пайплайна.
func NewRunCmd() *cobra.Command {
	var tick time.Duration
	var allowPartialFailure bool
	var journalDSN string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run CONTROL_FILE",
		Short: "Execute a pipeline from a control file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger := telemetry.SetupLogger()

			defs, err := config.Load(args[0])
			if err != nil {
				return err
			}

			client, err := platform.NewHTTPClient(platform.ConfigFromEnv(), logger)
			if err != nil {
				return err
			}
			if err := client.Authenticate(ctx); err != nil {
				return fmt.Errorf("authenticate: %w", err)
			}

			graph, err := config.BuildGraph(defs, client, config.BuildOptions{
				AllowPartialFailure: allowPartialFailure,
				Logger:              logger,
			})
			if err != nil {
				return err
			}
			logger.Info("pipeline graph built",
				"tasks", graph.Size(),
				"allow_partial_failure", allowPartialFailure)

			var rec *journal.Recorder
			if journalDSN != "" {
				rec, err = journal.Open(ctx, journalDSN, logger)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer rec.Close()
			}

			if metricsAddr != "" {
				serveMetrics(metricsAddr, logger)
			}

			runner := orchestrator.New(orchestrator.Config{
				Graph:        graph,
				Journal:      rec,
				TickInterval: tick,
				Logger:       logger,
			})

			err = runner.Run(ctx)
			var pipeErr *orchestrator.PipelineError
			if errors.As(err, &pipeErr) {
				for _, id := range pipeErr.FailedTaskIDs {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed task: %s\n", id)
				}
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", 0, "Polling interval between graph evaluations (default 15s)")
	cmd.Flags().BoolVar(&allowPartialFailure, "allow-partial-failure", false, "Keep going when some tasks permanently fail")
	cmd.Flags().StringVar(&journalDSN, "journal-dsn", os.Getenv("DB_URL"), "PostgreSQL DSN for the event journal (empty disables it)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address for the Prometheus /metrics endpoint (empty disables it)")

	return cmd
}

// serveMetrics поднимает /metrics в фоне; ошибка слушателя не
// роняет пайплайн.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics listener stopped", "addr", addr, "error", err)
		}
	}()
}
