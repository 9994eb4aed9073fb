package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64                  `json:"id"`
	ActorID    *uuid.UUID             `json:"actor_id,omitempty"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityName string                 `json:"entity_name"`
	EntityID   string                 `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
