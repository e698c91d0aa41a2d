package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vskvj3/playbook/internal/core"
	"github.com/vskvj3/playbook/internal/network"
	"github.com/vskvj3/playbook/internal/persistence"
	"github.com/vskvj3/playbook/internal/rpc"
	"github.com/vskvj3/playbook/internal/utils"
	"golang.org/x/sync/errgroup"
)

type serverFlags struct {
	configPath string
	port       int
	grpcPort   int
	debug      bool
	dataDir    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &serverFlags{}
	cmd := &cobra.Command{
		Use:           "playbook-server",
		Short:         "Serve array stacks, circular queues and linked lists over TCP and gRPC",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd, flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := run(ctx, config); err != nil {
				utils.GetLogger().Error(err.Error())
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to the config file (default ~/.playbook/playbook.yaml)")
	cmd.Flags().IntVar(&flags.port, "port", 0, "TCP port for msgpack clients")
	cmd.Flags().IntVar(&flags.grpcPort, "grpc-port", 0, "port for the gRPC service")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "directory for the append-only log")
	return cmd
}

// loadConfig reads the config file and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command, flags *serverFlags) (*utils.Config, error) {
	configPath := flags.configPath
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".playbook", "playbook.yaml")
	}

	config, err := utils.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		config.Port = flags.port
	}
	if cmd.Flags().Changed("grpc-port") {
		config.GrpcPort = flags.grpcPort
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = flags.debug
	}
	if cmd.Flags().Changed("data-dir") {
		config.DataDir = flags.dataDir
	}
	return config, nil
}

func run(ctx context.Context, config *utils.Config) error {
	logPath, logErr := utils.LogFilePath(config.DataDir)
	logger := utils.NewLogger(logPath, config.Debug)
	if logErr != nil {
		logger.Warn("Could not use the data directory for the log file: " + logErr.Error())
	}

	db, err := core.NewDatabase(config.DefaultCapacity)
	if err != nil {
		return fmt.Errorf("database creation failed: %w", err)
	}

	var requestLog core.RequestLogger
	if config.Persistence == utils.PersistenceAOF {
		p, err := persistence.NewPersistence(config.DataDir)
		if err != nil {
			return fmt.Errorf("could not open persistence: %w", err)
		}
		defer p.Close()
		requestLog = p

		applied, err := core.NewCommandHandler(db, nil).Replay(p)
		if err != nil {
			logger.Warn("Could not read all of persistence: " + err.Error())
			repaired, repairErr := p.RepairTail(err)
			if repairErr != nil {
				return fmt.Errorf("could not repair persistence: %w", repairErr)
			}
			if repaired {
				logger.Warn("Truncated the unreadable tail of " + p.Path())
			}
		}
		logger.Infof("Loaded %d requests from %s", applied, p.Path())
	} else {
		logger.Info("Persistence disabled")
	}

	handler := core.NewCommandHandler(db, requestLog)
	handler.StartCleanup(ctx, config.CleanupInterval())

	tcpServer, err := network.NewServer(handler, strconv.Itoa(config.Port))
	if err != nil {
		return fmt.Errorf("server creation failed: %w", err)
	}

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GrpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tcpServer.Start(ctx)
	})
	g.Go(func() error {
		return rpc.NewServer(handler).Serve(ctx, grpcListener)
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}
