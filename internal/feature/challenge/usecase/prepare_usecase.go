package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/shared/ratelimiter"
)

// FrameSource は銘柄の生データをフレームとして読み込むインターフェースです。
// CSVファイルや外部APIの実装を抽象化します。
type FrameSource interface {
	LoadFrame(ctx context.Context, symbol string) (*entity.Frame, error)
}

// PrepareUsecase は生データを整形し、その形状をチャレンジ結果として保存します。
type PrepareUsecase struct {
	source      FrameSource
	results     ResultRepository
	rateLimiter ratelimiter.RateLimiterInterface
	now         func() time.Time
}

// NewPrepareUsecase は新しいPrepareUsecaseを生成します。rateLimiterはnilでも構いません。
func NewPrepareUsecase(source FrameSource, results ResultRepository, rateLimiter ratelimiter.RateLimiterInterface) *PrepareUsecase {
	return &PrepareUsecase{
		source:      source,
		results:     results,
		rateLimiter: rateLimiter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeColumnName は列名を小文字化し、空白をアンダースコアに置き換えます（例: "Adj Close" → "adj_close"）。
func NormalizeColumnName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// PrepareFrame はフレームを整形します: 列名の正規化、'date'列の日時変換、
// 数値型の推定、インデックス設定、昇順ソート。
// 日時変換を先に行うので、20240102のような数字だけの日付も整数として扱われません。
func PrepareFrame(f *entity.Frame) error {
	if err := f.RenameColumns(NormalizeColumnName); err != nil {
		return err
	}
	if _, ok := f.Column(ExpectedIndexName); !ok {
		return domain.ErrMissingDateColumn
	}
	if err := f.ToDatetime(ExpectedIndexName); err != nil {
		return err
	}
	f.InferNumeric()
	if err := f.SetIndex(ExpectedIndexName); err != nil {
		return err
	}
	f.SortIndex()
	return nil
}

// Prepare は銘柄のデータを読み込んで整形し、チャレンジ結果として保存します。
func (pu *PrepareUsecase) Prepare(ctx context.Context, challenge, symbol string) (entity.Result, error) {
	challenge, err := normalizeChallenge(challenge)
	if err != nil {
		return entity.Result{}, err
	}

	if pu.rateLimiter != nil {
		if err := pu.rateLimiter.WaitIfNeeded(ctx); err != nil {
			return entity.Result{}, err
		}
	}
	f, err := pu.source.LoadFrame(ctx, symbol)
	if err != nil {
		return entity.Result{}, fmt.Errorf("load %s: %w", symbol, err)
	}
	if err := PrepareFrame(f); err != nil {
		return entity.Result{}, fmt.Errorf("prepare %s: %w", symbol, err)
	}

	r := f.Summary(challenge)
	r.CreatedAt = pu.now()
	if err := pu.results.Save(ctx, r); err != nil {
		return entity.Result{}, err
	}
	slog.Info("challenge result saved", "challenge", challenge, "symbol", symbol, "rows", r.Rows, "columns", r.Columns)
	return r, nil
}

// PrepareAll は複数の銘柄をそれぞれ "<prefix>_<symbol>" の名前で保存します。
// 1銘柄の失敗で処理は止めず、最後にまとめてエラーを返します。
func (pu *PrepareUsecase) PrepareAll(ctx context.Context, prefix string, symbols []string) ([]entity.Result, error) {
	var (
		out  []entity.Result
		errs []error
	)
	for _, s := range symbols {
		name := prefix + "_" + strings.ToLower(s)
		r, err := pu.Prepare(ctx, name, s)
		if err != nil {
			slog.Error("failed to prepare challenge result", "challenge", name, "symbol", s, "error", err)
			errs = append(errs, err)
			continue
		}
		out = append(out, r)
	}
	return out, errors.Join(errs...)
}
