package adapters

import (
	"context"
	"errors"
	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/usecase"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resultGorm struct {
	db *gorm.DB
}

var _ usecase.ResultRepository = (*resultGorm)(nil)

func NewResultRepository(db *gorm.DB) *resultGorm {
	return &resultGorm{db: db}
}

type ResultModel struct {
	ID        uint     `gorm:"primaryKey"`
	Challenge string   `gorm:"size:64;not null;uniqueIndex"`
	IndexName string   `gorm:"size:64;not null;default:''"`
	IndexType string   `gorm:"size:32;not null;default:''"`
	Columns   []string `gorm:"column:column_names;serializer:json;not null"`
	Rows      int      `gorm:"column:row_count;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ResultModel) TableName() string {
	return "challenge_results"
}

func toModel(e entity.Result) ResultModel {
	cols := e.Columns
	if cols == nil {
		cols = []string{}
	}
	return ResultModel{
		Challenge: e.Challenge,
		IndexName: e.IndexName,
		IndexType: string(e.IndexType),
		Columns:   cols,
		Rows:      e.Rows,
		CreatedAt: e.CreatedAt,
	}
}

func toEntity(m ResultModel) entity.Result {
	return entity.Result{
		Challenge: m.Challenge,
		IndexName: m.IndexName,
		IndexType: entity.DType(m.IndexType),
		Columns:   m.Columns,
		Rows:      m.Rows,
		CreatedAt: m.CreatedAt,
	}
}

// Save upserts the result keyed by challenge name.
func (r *resultGorm) Save(ctx context.Context, e entity.Result) error {
	m := toModel(e)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge"}},
		DoUpdates: clause.AssignmentColumns([]string{"index_name", "index_type", "column_names", "row_count", "created_at", "updated_at"}),
	}).Create(&m).Error
}

// FindByName loads the result stored for challenge.
func (r *resultGorm) FindByName(ctx context.Context, challenge string) (entity.Result, error) {
	var m ResultModel
	err := r.db.WithContext(ctx).Where("challenge = ?", challenge).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Result{}, domain.ErrResultNotFound
	}
	if err != nil {
		return entity.Result{}, err
	}
	return toEntity(m), nil
}
