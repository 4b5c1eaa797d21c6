package server

import (
	"encoding/json"
	"net/http"

	"EchoMeta/logger"
	"EchoMeta/model"

	"github.com/google/uuid"
)

// EventHandler 接收存储桶通知 webhook
type EventHandler struct {
	pipe  processor
	token string
}

// NewEventHandler 创建事件处理器；token 非空时要求 Bearer 认证
func NewEventHandler(pipe processor, token string) *EventHandler {
	return &EventHandler{pipe: pipe, token: token}
}

// HandleEvent 处理一批对象创建通知。
// 载荷形状在边界上显式校验，非法载荷返回 400；
// 批内任一文件失败返回 500，让投递方按自己的策略重投
// （管道是幂等的，重投不会产生重复转写开销）。
func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && r.Header.Get("Authorization") != "Bearer "+h.token {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var event model.ObjectEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return
	}
	if err := event.Validate(); err != nil {
		logger.Warn("事件载荷校验失败", logger.ErrorField(err))
		http.Error(w, "Invalid event payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	logger.Info("收到对象创建事件",
		logger.String("batchId", batchID),
		logger.Int("records", len(event.Records)))

	if err := h.pipe.ProcessEvent(r.Context(), event); err != nil {
		logger.Error("事件批次处理失败",
			logger.String("batchId", batchID),
			logger.ErrorField(err))
		http.Error(w, "Event processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
