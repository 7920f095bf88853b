package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/domain/interfaces/repositories"
)

var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// InventoryRepository implements repositories.InventoryRepository using YAML files
type InventoryRepository struct {
	parser *InventoryParser
}

// NewInventoryRepository creates a new YAML-based inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		parser: NewInventoryParser(),
	}
}

// GetInventory loads and parses a single inventory file
func (r *InventoryRepository) GetInventory(_ context.Context, path string) (*entities.Inventory, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("inventory not found: %s", path)
	}

	return r.parser.ParseFile(path)
}

// FindHost looks up a single host by name across all groups
func (r *InventoryRepository) FindHost(ctx context.Context, path, name string) (*entities.Host, error) {
	inv, err := r.GetInventory(ctx, path)
	if err != nil {
		return nil, err
	}

	for _, h := range inv.AllHosts() {
		if h.Name == name {
			return &h, nil
		}
	}

	return nil, fmt.Errorf("host not found in inventory: %s", name)
}
