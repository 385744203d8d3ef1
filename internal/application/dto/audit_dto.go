package dto

import "time"

// AuditFilterRequest filtros de GET /api/audit.
type AuditFilterRequest struct {
	UserID int64 `query:"user_id" json:"user_id" validate:"gte=0"`
	PageRequest
}

// AuditEntryResponse entrada de la bitácora.
type AuditEntryResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AuditListResponse página de la bitácora.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
