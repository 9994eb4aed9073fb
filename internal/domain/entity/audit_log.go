package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog records who changed which account or specialization. ActorID is
// nil for anonymous actions such as self-registration and admin-key calls.
type AuditLog struct {
	ID         int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID    *uuid.UUID        `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	ActorRole  string            `gorm:"type:varchar(20);not null" json:"actor_role"`
	Action     string            `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string            `gorm:"type:varchar(50);not null" json:"entity_name"`
	EntityID   string            `gorm:"type:varchar(64);not null;index" json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionAccountRegister    = "account.register"
	AuditActionAccountActivate    = "account.activate"
	AuditActionAccountDeactivate  = "account.deactivate"
	AuditActionAccountDelete      = "account.delete"
	AuditActionProfileCreate      = "profile.create"
	AuditActionProfileUpdate      = "profile.update"
	AuditActionPasswordChange     = "password.change"
	AuditActionSpecializationAdd  = "specialization.create"
	AuditActionSpecializationEdit = "specialization.update"
	AuditActionSpecializationDrop = "specialization.delete"
)
