package cmd

import (
	"context"
	"log"

	"EchoMeta/model"

	"github.com/spf13/cobra"
)

var processBucket string

var processCmd = &cobra.Command{
	Use:   "process <key>",
	Short: "处理单个对象",
	Long:  `对指定对象键执行一次完整的元数据提取，等同于收到一条该对象的创建事件。`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, pipe, err := setup()
		if err != nil {
			log.Fatalf("初始化失败: %v", err)
		}

		bucket := processBucket
		if bucket == "" {
			bucket = cfg.Bucket
		}

		src := model.SourceObject{Bucket: bucket, Key: args[0]}
		if err := pipe.ProcessSource(context.Background(), src); err != nil {
			log.Fatalf("处理 %s 失败: %v", args[0], err)
		}
		log.Printf("处理完成: %s", args[0])
	},
}

func init() {
	processCmd.Flags().StringVar(&processBucket, "bucket", "", "存储桶名称（默认取配置）")
	rootCmd.AddCommand(processCmd)
}
