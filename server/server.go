package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EchoMeta/config"
	"EchoMeta/model"
	"EchoMeta/storage"

	"github.com/gorilla/mux"
)

// processor 是事件处理入口的最小契约，便于测试替换
type processor interface {
	ProcessEvent(ctx context.Context, event model.ObjectEvent) error
}

// NewRouter 装配 HTTP 路由
func NewRouter(cfg *config.Config, pipe processor, store storage.Store) *mux.Router {
	eventHandler := NewEventHandler(pipe, cfg.WebhookToken)
	recordHandler := NewRecordHandler(store, cfg.Bucket, cfg.GeneratedFolder)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// 存储桶通知 webhook
	router.HandleFunc("/events", eventHandler.HandleEvent).Methods(http.MethodPost)

	// 元数据记录只读查询
	router.HandleFunc("/api/records/{path:.+}", recordHandler.HandleGet).Methods(http.MethodGet)

	return router
}

// Start 启动 HTTP 服务器并在收到中断信号时优雅关闭
func Start(cfg *config.Config, pipe processor, store storage.Store) {
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      NewRouter(cfg, pipe, store),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 在goroutine中启动服务器
	go func() {
		log.Printf("Server starting on %s...", cfg.ListenAddr)
		log.Println("Deliver bucket notifications via POST to /events")
		log.Println("Query metadata records via GET /api/records/{folder}/{name}.json")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待中断信号
	<-stop
	log.Println("Shutting down server...")

	// 创建一个5秒超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
