// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_frame/internal/feature/symbollist/domain"
	"stock_frame/internal/feature/symbollist/domain/entity"
	"stock_frame/internal/feature/symbollist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// SymbolModel は銘柄カタログのテーブル定義です。
type SymbolModel struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"size:20;not null;uniqueIndex"`
	Name      string `gorm:"size:255;not null;default:''"`
	Exchange  string `gorm:"size:100;not null;default:''"`
	IsActive  bool   `gorm:"not null"`
	SortKey   int    `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (SymbolModel) TableName() string {
	return "symbols"
}

func toSymbolEntity(m SymbolModel) entity.Symbol {
	return entity.Symbol{
		Code:      m.Code,
		Name:      m.Name,
		Exchange:  m.Exchange,
		Active:    m.IsActive,
		SortKey:   m.SortKey,
		UpdatedAt: m.UpdatedAt,
	}
}

// ListActive はsort_key順（同順位はcode順）にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var models []SymbolModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").Order("code ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(models))
	for _, m := range models {
		out = append(out, toSymbolEntity(m))
	}
	return out, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&SymbolModel{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Upsert はcodeをキーに銘柄を登録（既存なら更新）します。
func (r *symbolGorm) Upsert(ctx context.Context, s entity.Symbol) error {
	m := SymbolModel{
		Code:     s.Code,
		Name:     s.Name,
		Exchange: s.Exchange,
		IsActive: s.Active,
		SortKey:  s.SortKey,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "exchange", "is_active", "sort_key", "updated_at"}),
	}).Create(&m).Error
}

// SetActive は銘柄の有効/無効を切り替えます。存在しない場合はdomain.ErrSymbolNotFoundを返します。
func (r *symbolGorm) SetActive(ctx context.Context, code string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&SymbolModel{}).
		Where("code = ?", code).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSymbolNotFound
	}
	return nil
}
