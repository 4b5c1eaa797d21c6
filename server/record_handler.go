package server

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"EchoMeta/logger"
	"EchoMeta/storage"

	"github.com/gorilla/mux"
)

// RecordHandler 从存储桶直读元数据记录，只读便捷接口
type RecordHandler struct {
	store           storage.Store
	bucket          string
	generatedFolder string
}

// NewRecordHandler 创建记录查询处理器
func NewRecordHandler(store storage.Store, bucket, generatedFolder string) *RecordHandler {
	return &RecordHandler{store: store, bucket: bucket, generatedFolder: generatedFolder}
}

// HandleGet 返回 <folder>/<generated>/meta/ 下的记录或索引。
// 路径格式: /api/records/{folder}/{name}.json
func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rel := mux.Vars(r)["path"]
	if rel == "" || strings.Contains(rel, "..") {
		http.Error(w, "Invalid record path", http.StatusBadRequest)
		return
	}

	folder, name := path.Split(path.Clean(rel))
	key := path.Join(strings.TrimSuffix(folder, "/"), h.generatedFolder, "meta", name)

	data, err := h.store.Get(r.Context(), h.bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
		logger.Error("读取元数据记录失败",
			logger.String("key", key),
			logger.ErrorField(err))
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
