package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/app/server"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/platform/config"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/logger"
	"hrpay/internal/requestctx"
)

var rootCmd = &cobra.Command{
	Use:           "hrpay",
	Short:         "HR and payroll API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and seed data",
	RunE:  runMigrate,
}

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll maintenance",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Recalculate payroll for one month",
	Long: `Recalculate payroll rows for every ACTIVE employee, or one employee
with --emp, using the configured backend.

With --async the run goes through the job queue and the command waits for
the job to finish, printing the job record instead of the bare result.`,
	RunE: runCalculate,
}

var (
	calcMonth int
	calcYear  int
	calcEmp   string
	calcAsync bool
)

func init() {
	now := time.Now()
	calculateCmd.Flags().IntVar(&calcMonth, "month", int(now.Month()), "month number (1-12)")
	calculateCmd.Flags().IntVar(&calcYear, "year", now.Year(), "year")
	calculateCmd.Flags().StringVar(&calcEmp, "emp", "", "only this employee code")
	calculateCmd.Flags().BoolVar(&calcAsync, "async", false, "run through the job queue")

	payrollCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, payrollCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	return server.Run(cmd.Context(), config.Load())
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if !cfg.UseDatabase() {
		return fmt.Errorf("migrate needs DATABASE_URL with USE_MOCK_DATA=false")
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		return err
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(applied))
	for _, name := range applied {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+name)
	}
	return nil
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	ctx := requestctx.WithActor(cmd.Context(), "cli")
	cfg := config.Load()
	// The scheduler belongs to the server process.
	cfg.PayrollScheduleInterval = 0

	app, err := server.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	req := payroll.CalculationRequest{MonthNum: calcMonth, YearNum: calcYear, EmpID: calcEmp}
	var out any
	if calcAsync {
		out, err = waitForJob(ctx, app.Jobs, app.Runner.Job(ctx, req))
	} else {
		out, err = app.Runner.Run(ctx, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func waitForJob(ctx context.Context, svc *jobs.Service, run jobs.RunFunc) (jobs.Run, error) {
	queued, err := svc.Enqueue(jobs.JobPayrollCalculation, run)
	if err != nil {
		return jobs.Run{}, err
	}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return jobs.Run{}, ctx.Err()
		case <-ticker.C:
		}
		current, ok := svc.Get(queued.ID)
		if !ok {
			return jobs.Run{}, fmt.Errorf("job %s disappeared", queued.ID)
		}
		switch current.Status {
		case jobs.StatusCompleted:
			return current, nil
		case jobs.StatusFailed:
			return current, fmt.Errorf("job %s failed: %s", current.ID, current.Error)
		}
	}
}
