package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"EchoMeta/watcher"

	"github.com/spf13/cobra"
)

var (
	watchBucket string
	watchPrefix string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "监听本地目录",
	Long:  `监听本地收件目录，把新增的音频文件上传到存储桶并立即处理。适合开发调试和批量回填。`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store, pipe, err := setup()
		if err != nil {
			log.Fatalf("初始化失败: %v", err)
		}

		bucket := watchBucket
		if bucket == "" {
			bucket = cfg.Bucket
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.New(store, pipe, bucket, watchPrefix)
		if err := w.Run(ctx, args[0]); err != nil && err != context.Canceled {
			log.Fatalf("监听失败: %v", err)
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchBucket, "bucket", "", "存储桶名称（默认取配置）")
	watchCmd.Flags().StringVar(&watchPrefix, "prefix", "", "上传到桶内的键前缀")
	rootCmd.AddCommand(watchCmd)
}
