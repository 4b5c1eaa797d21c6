package cmd

import (
	"context"
	"log"
	"path"

	"github.com/spf13/cobra"
)

var reindexBucket string

var reindexCmd = &cobra.Command{
	Use:   "reindex <folder>",
	Short: "重建目录索引",
	Long:  `对指定源目录的元数据索引执行一次全量重建，用于修复并发写入造成的索引缺项。`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, pipe, err := setup()
		if err != nil {
			log.Fatalf("初始化失败: %v", err)
		}

		bucket := reindexBucket
		if bucket == "" {
			bucket = cfg.Bucket
		}

		metaFolder := path.Join(args[0], cfg.GeneratedFolder, "meta")
		if err := pipe.Indexer().Rebuild(context.Background(), bucket, metaFolder); err != nil {
			log.Fatalf("重建索引失败: %v", err)
		}
		log.Printf("索引已重建: %s/index.json", metaFolder)
	},
}

func init() {
	reindexCmd.Flags().StringVar(&reindexBucket, "bucket", "", "存储桶名称（默认取配置）")
	rootCmd.AddCommand(reindexCmd)
}
