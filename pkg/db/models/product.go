package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/omnistock/omnistock-backend/pkg/enums"
)

// Product is an optional sealed-product reference a catalog item can link to.
type Product struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Type        enums.ProductType `gorm:"column:type;type:text;not null"`
	ReleaseDate *time.Time        `gorm:"column:release_date;type:date"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
