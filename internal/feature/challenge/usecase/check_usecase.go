package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
)

// ResultRepository はチャレンジ結果の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ResultRepository interface {
	// Save はチャレンジ名をキーに結果を保存（既存なら更新）します。
	Save(ctx context.Context, r entity.Result) error
	// FindByName は保存済みの結果を取得します。存在しない場合はdomain.ErrResultNotFoundを返します。
	FindByName(ctx context.Context, challenge string) (entity.Result, error)
}

// CheckUsecase は保存済みの結果を読み込み、検証を実行します。
type CheckUsecase struct {
	results   ResultRepository
	validator *Validator
	now       func() time.Time
}

// NewCheckUsecase は新しいCheckUsecaseを生成します。
func NewCheckUsecase(results ResultRepository, validator *Validator) *CheckUsecase {
	if validator == nil {
		validator = NewValidator()
	}
	return &CheckUsecase{
		results:   results,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// normalizeChallenge は前後の空白を除いたチャレンジ名を検証して返します。
func normalizeChallenge(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrEmptyChallenge
	}
	if n := utf8.RuneCountInString(name); n > domain.MaxChallengeLength {
		return "", fmt.Errorf("%w: %d characters, max %d", domain.ErrChallengeTooLong, n, domain.MaxChallengeLength)
	}
	return name, nil
}

// Check は指定されたチャレンジの結果を読み込み、全チェックのレポートを返します。
func (cu *CheckUsecase) Check(ctx context.Context, challenge string) (entity.Report, error) {
	challenge, err := normalizeChallenge(challenge)
	if err != nil {
		return entity.Report{}, err
	}

	r, err := cu.results.FindByName(ctx, challenge)
	if err != nil {
		return entity.Report{}, err
	}
	return cu.validator.Validate(r), nil
}

// GetResult は保存済みの結果をそのまま返します。
func (cu *CheckUsecase) GetResult(ctx context.Context, challenge string) (entity.Result, error) {
	challenge, err := normalizeChallenge(challenge)
	if err != nil {
		return entity.Result{}, err
	}
	return cu.results.FindByName(ctx, challenge)
}

// SaveResult は外部で用意された結果を保存し、保存した内容を返します。
// 名前は空白を除去し、CreatedAtが未設定なら現在時刻を設定します。
func (cu *CheckUsecase) SaveResult(ctx context.Context, r entity.Result) (entity.Result, error) {
	name, err := normalizeChallenge(r.Challenge)
	if err != nil {
		return entity.Result{}, err
	}
	r.Challenge = name
	if r.CreatedAt.IsZero() {
		r.CreatedAt = cu.now()
	}
	if err := cu.results.Save(ctx, r); err != nil {
		return entity.Result{}, err
	}
	return r, nil
}
