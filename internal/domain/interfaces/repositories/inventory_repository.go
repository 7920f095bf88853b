// Package repositories defines domain contracts for loading configuration data.
package repositories

import (
	"context"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// InventoryRepository loads host inventories
type InventoryRepository interface {
	// GetInventory loads and parses a single inventory file
	GetInventory(ctx context.Context, path string) (*entities.Inventory, error)
}
