package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kelsos/makerspace-demo/internal/client"
	"github.com/kelsos/makerspace-demo/internal/config"
	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/server"
	"github.com/kelsos/makerspace-demo/internal/services"
	"github.com/kelsos/makerspace-demo/internal/tui"
	"github.com/kelsos/makerspace-demo/internal/utils"
)

// loadConfig builds the configuration: defaults, then the config file, then
// the environment, then explicitly set flags.
func loadConfig(configPath string, apply func(*config.Config)) (*config.Config, error) {
	cfg := config.NewConfig()

	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			return nil, err
		}
	}

	cfg.LoadFromEnvironment()
	apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadEnvironment loads envFile when given, otherwise the default .env
// locations. Variables already set in the process win.
func loadEnvironment(envFile string) error {
	if envFile == "" {
		utils.LoadEnvironment()
		return nil
	}
	if err := utils.LoadEnvironmentFile(envFile); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}
	logger.Info("Loaded environment from %s", envFile)
	return nil
}

func serve(cfg *config.Config, withTUI bool) error {
	if _, exists := os.LookupEnv("DEBUG"); !exists {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := services.NewServices(cfg)

	if !withTUI {
		return server.NewServer(cfg, svc).Run(ctx)
	}

	logPath, err := logger.InitFileOnly()
	if err != nil {
		return err
	}
	defer logger.Close()

	monitor := tui.NewRequestMonitor(cfg.Address(), logPath)
	srv := server.NewServer(cfg, svc, server.WithObserver(monitor))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := srv.Run(ctx)
		monitor.ServerStopped(err)
		done <- err
	}()

	go func() {
		<-ctx.Done()
		monitor.Stop()
	}()

	if err := monitor.Run(); err != nil {
		logger.Error("Request monitor exited: %v", err)
	}

	cancel()
	return <-done
}

func main() {
	logger.Init()

	var (
		envFile      string
		configPath   string
		host         string
		port         int
		dataDir      string
		responsesDir string
		withTUI      bool
	)

	applyFlags := func(cmd *cobra.Command) func(*config.Config) {
		return func(cfg *config.Config) {
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Host = host
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("data-dir") {
				cfg.DataDir = dataDir
			}
			if flags.Changed("responses-dir") {
				cfg.ResponsesDir = responsesDir
			}
		}
	}

	rootCmd := &cobra.Command{
		Use:   "makerspace-demo",
		Short: "A demo API server for the MakerSpace dashboard",
		Long: `makerspace-demo serves a fixed-tenant user directory and a per-session
task list seeded from a YAML file, for front-end development.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvironment(envFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(configPath, applyFlags(cmd))
			if err != nil {
				logger.Fatal("Failed to load configuration: %v", err)
			}

			if err := serve(cfg, withTUI); err != nil {
				logger.Fatal("Server error: %v", err)
			}
		},
	}

	// Add a check command
	var (
		readyAttempts int
		readyDelay    int
	)
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check a running server against the expected API behaviour",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(configPath, applyFlags(cmd))
			if err != nil {
				logger.Fatal("Failed to load configuration: %v", err)
			}

			apiClient, err := client.NewAPIClient(cfg.BaseURL())
			if err != nil {
				logger.Fatal("Failed to create client: %v", err)
			}
			if !apiClient.WaitForAPIReady(readyAttempts, time.Duration(readyDelay)*time.Millisecond) {
				logger.Fatal("Server at %s is not reachable", cfg.BaseURL())
			}

			results, err := client.RunChecks(cfg.BaseURL())
			if err != nil {
				logger.Fatal("Failed to run checks: %v", err)
			}

			fmt.Println(renderChecks(results))
			for _, result := range results {
				if !result.Passed {
					os.Exit(1)
				}
			}
		},
	}
	checkCmd.Flags().IntVarP(&readyAttempts, "ready-attempts", "a", 10, "Maximum attempts to check API readiness")
	checkCmd.Flags().IntVarP(&readyDelay, "ready-delay", "d", 500, "Delay between readiness attempts in milliseconds")

	// Add a routes command
	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "List the API routes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(renderRoutes(server.Routes()))
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Load this .env file instead of the default locations")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&host, "host", "", "", "Host to bind to or reach the server on")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 4000, "Port to serve on or reach the server on")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "", "./data", "Directory holding the task seed")
	rootCmd.Flags().StringVarP(&responsesDir, "responses-dir", "", "./responses", "Directory holding canned responses")
	rootCmd.Flags().BoolVarP(&withTUI, "tui", "", false, "Show a live request monitor")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(routesCmd)

	// Execute the root command
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
