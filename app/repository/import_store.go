package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/complymate/doorguard/app/models"
	"github.com/complymate/doorguard/internal/pkg/importer"
)

// importStore is the gorm-backed persistence boundary of the import pipeline.
type importStore struct {
	db *gorm.DB
}

// NewImportStore creates the import store used by the bulk import pipeline.
func NewImportStore(db *gorm.DB) importer.Store {
	return &importStore{db: db}
}

// WithTenantLock opens a transaction, takes a FOR UPDATE lock on the tenant
// row and hands the reloaded tenant to fn. The lock serializes quota checks
// across concurrent imports and creates for the same tenant; the transaction
// inherits the caller's context so request timeouts cancel it.
func (s *importStore) WithTenantLock(ctx context.Context, tenantID uint, fn func(tx importer.Tx, tenant *models.Tenant) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tenant, tenantID).Error; err != nil {
			return err
		}
		return fn(&importTx{db: tx}, &tenant)
	})
}

type importTx struct {
	db *gorm.DB
}

func (t *importTx) CountBuildings(tenantID uint) (int64, error) {
	var count int64
	err := t.db.Model(&models.Building{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (t *importTx) CountFireDoors(tenantID uint) (int64, error) {
	var count int64
	err := t.db.Model(&models.FireDoor{}).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}

func (t *importTx) BuildingsByName(tenantID uint) (map[string]*models.Building, error) {
	var buildings []models.Building
	if err := t.db.Where("tenant_id = ?", tenantID).Find(&buildings).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]*models.Building, len(buildings))
	for i := range buildings {
		byName[strings.ToLower(buildings[i].Name)] = &buildings[i]
	}
	return byName, nil
}

func (t *importTx) CreateBuilding(building *models.Building) error {
	return t.db.Create(building).Error
}

func (t *importTx) CreateFireDoor(door *models.FireDoor) error {
	return t.db.Create(door).Error
}
