package services

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs fn inside a single database transaction. Services use it
// for multi-row writes that must land together, like the cascade on
// folder removal.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
