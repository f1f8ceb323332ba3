package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/eujim/backend/internal/domain/shared"
	"github.com/eujim/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttacheeRepository implements AttacheeRepository using GORM
type GormAttacheeRepository struct {
	db *gorm.DB
}

// NewGormAttacheeRepository creates a new GormAttacheeRepository
func NewGormAttacheeRepository(db *gorm.DB) *GormAttacheeRepository {
	return &GormAttacheeRepository{db: db}
}

// FindByID finds an application by its ID
func (r *GormAttacheeRepository) FindByID(ctx context.Context, id uuid.UUID) (*attachment.Attachee, error) {
	var model models.AttacheeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrackingID finds an application by its tracking reference
func (r *GormAttacheeRepository) FindByTrackingID(ctx context.Context, trackingID string) (*attachment.Attachee, error) {
	var model models.AttacheeModel
	if err := r.db.WithContext(ctx).
		Where("tracking_id = ?", strings.ToUpper(strings.TrimSpace(trackingID))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLookup resolves the public status-check query: a tracking reference,
// an email address or a national ID number all match the same record.
func (r *GormAttacheeRepository) FindByLookup(ctx context.Context, query string) (*attachment.Attachee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.ErrNotFound
	}

	var model models.AttacheeModel
	if err := r.db.WithContext(ctx).
		Where("tracking_id = ? OR LOWER(email) = LOWER(?) OR national_id = ?",
			strings.ToUpper(query), query, query).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all applications matching the filter
func (r *GormAttacheeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]attachment.Attachee, error) {
	var attacheeModels []models.AttacheeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AttacheeModel{}), filter)

	if err := query.Find(&attacheeModels).Error; err != nil {
		return nil, err
	}

	attachees := make([]attachment.Attachee, len(attacheeModels))
	for i, model := range attacheeModels {
		attachees[i] = *model.ToDomain()
	}
	return attachees, nil
}

// Count counts applications matching the filter
func (r *GormAttacheeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.AttacheeModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the per-status counters for the dashboard
func (r *GormAttacheeRepository) CountByStatus(ctx context.Context) (map[attachment.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AttacheeModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[attachment.Status]int64, len(rows))
	for _, row := range rows {
		counts[attachment.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// CountByInstitution returns applicant counts grouped by institution,
// largest first
func (r *GormAttacheeRepository) CountByInstitution(ctx context.Context) ([]attachment.InstitutionStat, error) {
	var stats []attachment.InstitutionStat
	if err := r.db.WithContext(ctx).
		Model(&models.AttacheeModel{}).
		Select("institution, COUNT(*) as student_count").
		Group("institution").
		Order("student_count DESC").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// CountByGender returns applicant counts grouped by gender
func (r *GormAttacheeRepository) CountByGender(ctx context.Context) ([]attachment.GenderStat, error) {
	var stats []attachment.GenderStat
	if err := r.db.WithContext(ctx).
		Model(&models.AttacheeModel{}).
		Select("gender, COUNT(*) as count").
		Group("gender").
		Order("count DESC").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ExistsByNationalID checks whether an application already exists for a
// national ID number
func (r *GormAttacheeRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	if nationalID == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AttacheeModel{}).
		Where("national_id = ?", nationalID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an application. Unique constraint violations on
// tracking_id or national_id surface as shared.ErrAlreadyExists so the
// service layer can retry with a fresh reference.
func (r *GormAttacheeRepository) Save(ctx context.Context, attachee *attachment.Attachee) error {
	model := models.AttacheeModelFromDomain(attachee)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes an application
func (r *GormAttacheeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttacheeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormAttacheeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}
	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAttacheeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"tracking_id ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR national_id ILIKE ? OR institution ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "institution":
			query = query.Where("institution = ?", value)
		case "gender":
			query = query.Where("gender = ?", value)
		}
	}
	return query
}

// Ensure GormAttacheeRepository implements AttacheeRepository
var _ attachment.AttacheeRepository = (*GormAttacheeRepository)(nil)
