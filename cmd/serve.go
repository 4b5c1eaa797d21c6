package cmd

import (
	"log"

	"EchoMeta/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动事件 webhook 服务器",
	Long:  `启动 HTTP 服务器，接收存储桶的对象创建通知并逐条处理，同时提供元数据记录的只读查询接口。`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store, pipe, err := setup()
		if err != nil {
			log.Fatalf("初始化失败: %v", err)
		}
		server.Start(cfg, pipe, store)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
