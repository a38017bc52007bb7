package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, typeFilter string) ([]model.Project, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateGallery replaces the gallery column if and only if the stored
	// version still matches expectedVersion; it increments the version on
	// success and reports whether the write was applied.
	UpdateGallery(ctx context.Context, id uuid.UUID, gallery model.StringList, expectedVersion int64) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository builds a GORM-backed repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns projects most recent first, optionally restricted to one type.
func (r *projectRepository) List(ctx context.Context, typeFilter string) ([]model.Project, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	var projects []model.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateFields applies a partial field-merge update. Gallery and version are
// never part of fields; those go through UpdateGallery.
func (r *projectRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) UpdateGallery(ctx context.Context, id uuid.UUID, gallery model.StringList, expectedVersion int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"gallery": gallery,
			"version": expectedVersion + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
