package history

import (
	"context"
	"errors"
	"time"

	"github.com/cardioscope-ai/riskscore/pkg/common/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordModel is the postgres row backing one history entry. Inputs carries a
// snapshot of the normalized feature values that produced the score.
type RecordModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt          time.Time `gorm:"index"`
	Name               string
	AgeYears           int
	Gender             string
	ProbabilityPercent int
	RiskLevel          string
	Inputs             datatypes.JSONMap
}

func (RecordModel) TableName() string {
	return "risk_history"
}

// Repository is the postgres-backed Store. The database serializes writers,
// so unlike the file store no process-local lock is needed.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&RecordModel{})
}

func (r *Repository) Append(ctx context.Context, record models.HistoryRecord, inputs map[string]interface{}) (models.HistoryRecord, error) {
	id := uuid.New()
	if record.ID != "" {
		parsed, err := uuid.Parse(record.ID)
		if err != nil {
			return models.HistoryRecord{}, err
		}
		id = parsed
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	row := &RecordModel{
		ID:                 id,
		CreatedAt:          record.Timestamp,
		Name:               record.Name,
		AgeYears:           record.AgeYears,
		Gender:             record.Gender,
		ProbabilityPercent: record.ProbabilityPercent,
		RiskLevel:          record.RiskLevel,
	}
	if inputs != nil {
		row.Inputs = datatypes.JSONMap(inputs)
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.HistoryRecord{}, err
	}
	record.ID = id.String()
	return record, nil
}

func (r *Repository) List(ctx context.Context) ([]models.HistoryRecord, error) {
	var rows []RecordModel
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	records := make([]models.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDomain(row))
	}
	return records, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).Delete(&RecordModel{}, "id = ?", parsed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *Repository) DeleteAt(ctx context.Context, index int) error {
	if index < 0 {
		return ErrIndexOutOfRange
	}
	var row RecordModel
	result := r.db.WithContext(ctx).Order("created_at asc").Offset(index).Limit(1).Find(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 || row.ID == uuid.Nil {
		return ErrIndexOutOfRange
	}
	return r.db.WithContext(ctx).Delete(&RecordModel{}, "id = ?", row.ID).Error
}

func (r *Repository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&RecordModel{})
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func toDomain(row RecordModel) models.HistoryRecord {
	return models.HistoryRecord{
		ID:                 row.ID.String(),
		Timestamp:          row.CreatedAt,
		Name:               row.Name,
		AgeYears:           row.AgeYears,
		Gender:             row.Gender,
		ProbabilityPercent: row.ProbabilityPercent,
		RiskLevel:          row.RiskLevel,
	}
}
