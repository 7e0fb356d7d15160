package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/bot"
	"github.com/marketscope/cryptobot/pkg/logger"
)

const serveLongDesc string = `Run the crypto research chat server.

Configuration comes from an optional TOML file, a .env file in the
working directory, and environment variables, in that order. The server
exposes the chat relay, market-data and chart endpoints and runs until
interrupted.

Examples:
  cryptobot serve
  cryptobot serve --listen :9000 --debug
  cryptobot serve --config /etc/cryptobot/cryptobot.toml`

const serveShortDesc string = "Run the chat backend server"

type serveCommander struct {
	listenAddr string
	configPath string
	debug      bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (overrides config)")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command) error {
	config, err := bot.LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if c.listenAddr != "" {
		config.ListenAddr = c.listenAddr
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = c.debug
	}

	log := logger.NewLogger(config.Debug)
	defer log.Sync()

	b, err := bot.New(config, log)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("signal received", zap.String("signal", sig.String()))
		if err := b.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	return b.Run()
}
