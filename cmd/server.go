/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridops/outage-gin/internal/api"
	"github.com/gridops/outage-gin/internal/config"
	"github.com/gridops/outage-gin/internal/container"
	"github.com/gridops/outage-gin/internal/metrics"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Outage Gin API server.
The server will listen on the configured host and port,
and provide REST API interfaces for outage request import and management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		api.SetLogger(logger)

		// 3. 初始化容器
		ctr, err := container.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 4. 启动数据库指标收集
		metrics.Register()
		collector := metrics.NewCollector(ctr.DB(), 15*time.Second)
		collector.Start()
		defer collector.Stop()

		// 5. 配置文件热更新(仅显式指定配置文件时启用)
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				ctr.ApplyImportConfig(newCfg)
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watch unavailable")
			} else {
				defer watcher.Stop()
			}
		}

		// 6. 控制器与路由
		router := api.SetupRoutes(ctr.DB(), cfg, api.Controllers{
			Import:    api.NewImportController(ctr.ImportService()),
			Request:   api.NewRequestController(ctr.RequestService()),
			Directory: api.NewDirectoryController(ctr.DirectoryRepository()),
		})

		// 7. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.outage-gin)")
}
