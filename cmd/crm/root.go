package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcs-crm/internal/pkg/config"
	"pcs-crm/internal/pkg/database"
	"pcs-crm/internal/pkg/logger"
	"pcs-crm/pkg/utils"
)

const (
	appVersion = "1.0.0"
	appName    = "pcs-crm"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "PCS 内部 CRM 服务",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径 (例如: --config=configs/config.yaml)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, remindCmd, versionCmd)
}

// getConfigPath 获取配置文件路径
// 优先级: 命令行参数 > 环境变量 > 默认路径
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}
	return "configs/config.yaml"
}

// bootstrap 加载配置、初始化日志和数据库，返回清理函数
func bootstrap() (*config.Config, func(), error) {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	logger.Info(fmt.Sprintf("Load config file: %s", configPath))

	if err := utils.RegisterValidations(); err != nil {
		_ = logger.Close()
		return nil, nil, fmt.Errorf("注册校验规则失败: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		_ = logger.Close()
		return nil, nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	logger.Info(fmt.Sprintf("数据库连接成功 %s:%v", cfg.Database.Host, cfg.Database.Port), zap.String("database", cfg.Database.Database))

	cleanup := func() {
		_ = database.Close()
		_ = logger.Close()
	}
	return cfg, cleanup, nil
}
