package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pcs-crm/internal/pkg/database"
	"pcs-crm/internal/pkg/logger"
	"pcs-crm/internal/repository"
	"pcs-crm/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "从 YAML 文件初始化账号",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		_, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		created, err := seed.Apply(repository.NewUserRepository(database.GetDB()), f)
		if err != nil {
			return fmt.Errorf("写入种子数据失败: %w", err)
		}
		logger.Info("种子数据写入完成", zap.Int("created", created), zap.Int("total", len(f.Users)))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/seed.yaml", "种子文件路径")
}
