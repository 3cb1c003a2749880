package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/frigatebird-studio/tonx-go/internal/config"
	"github.com/frigatebird-studio/tonx-go/internal/server"
)

var cfgFile string

// rootCmd 表示基础命令
var rootCmd = &cobra.Command{
	Use:   "tonxgate",
	Short: "tonxgate is a JSON-RPC gateway in front of the TONX API",
	Long: `tonxgate exposes the TONX API as a single JSON-RPC endpoint.

It provides an HTTP JSON-RPC interface that:
1. Validates parameters locally before calling the backend
2. Routes labs methods to the labs endpoint and everything else to json-rpc
3. Reports backend, transport and schema failures as typed JSON-RPC errors`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         run,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// 全局标志
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tonxgate.yaml)")

	// 子命令共享上游和日志配置，因此注册为持久标志
	if err := registerFlags(rootCmd.PersistentFlags(), viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(versionCmd, callCmd, methodsCmd)
}

// initConfig 初始化配置
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".tonxgate")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// run 是主命令的执行函数
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Starting tonxgate with configuration: %s\n", cfg.String())

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	errCh := srv.Start()

	return waitForInterrupt(cmd, srv, errCh)
}

// waitForInterrupt 等待中断信号并优雅关闭服务器
func waitForInterrupt(cmd *cobra.Command, srv *server.Server, errCh <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		fmt.Fprintf(cmd.ErrOrStderr(), "\nReceived signal: %v. Shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Server shutdown complete")
	return nil
}
