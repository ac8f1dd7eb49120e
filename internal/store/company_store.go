package store

import (
	"context"
	"fmt"

	"nexus/backend/internal/models"

	"gorm.io/gorm"
)

const listCompaniesSQL = `
SELECT c.*, COALESCE(g.cnt, 0) AS game_count
FROM companies c
LEFT JOIN (SELECT company_id, COUNT(*) AS cnt FROM games GROUP BY company_id) g
  ON g.company_id = c.id
ORDER BY c.name ASC`

// CompanyStore persists companies.
type CompanyStore struct {
	db *gorm.DB
}

func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

// List returns every company ordered by name, each with its current game count.
func (s *CompanyStore) List(ctx context.Context) ([]models.CompanyWithCount, error) {
	companies := []models.CompanyWithCount{}
	if err := s.db.WithContext(ctx).Raw(listCompaniesSQL).Scan(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Create inserts a company. A taken slug yields ErrConflict.
func (s *CompanyStore) Create(ctx context.Context, name, slug string) (*models.Company, error) {
	company := models.Company{Name: name, Slug: slug}
	if err := s.db.WithContext(ctx).Create(&company).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create company %q: %w", slug, ErrConflict)
		}
		return nil, fmt.Errorf("create company: %w", err)
	}
	return &company, nil
}
