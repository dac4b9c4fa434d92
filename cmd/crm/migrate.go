package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pcs-crm/internal/pkg/database"
	"pcs-crm/internal/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "同步数据库表结构",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.Migrate(database.GetDB()); err != nil {
			return fmt.Errorf("同步表结构失败: %w", err)
		}
		logger.Info("表结构同步完成")
		return nil
	},
}
