package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
)

// mockResultRepository はテスト用のResultRepositoryモック実装です。
type mockResultRepository struct {
	saveFn   func(ctx context.Context, r entity.Result) error
	findFn   func(ctx context.Context, challenge string) (entity.Result, error)
	findCall int
}

func (m *mockResultRepository) Save(ctx context.Context, r entity.Result) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, r)
	}
	return nil
}

func (m *mockResultRepository) FindByName(ctx context.Context, challenge string) (entity.Result, error) {
	m.findCall++
	if m.findFn != nil {
		return m.findFn(ctx, challenge)
	}
	return entity.Result{}, nil
}

func appleResult() entity.Result {
	return entity.Result{
		Challenge: "apple",
		IndexName: "date",
		IndexType: entity.DTypeDatetime64NS,
		Columns:   []string{"open", "high", "low", "close"},
		Rows:      2,
	}
}

// TestNewCachingResultRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingResultRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               TTLFunc
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when nil/empty",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "results",
		},
		{
			name:              "negative ttl uses default",
			ttl:               FixedTTL(-1 * time.Minute),
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "results",
		},
		{
			name:              "custom values preserved",
			ttl:               FixedTTL(10 * time.Minute),
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingResultRepository(nil, tt.ttl, &mockResultRepository{}, tt.namespace)

			if got := repo.expiry(); got != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, got)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingResultRepository_FindByName_NilRedis はRedisがnilの場合に内部リポジトリを直接呼び出すことを検証します。
func TestCachingResultRepository_FindByName_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockResultRepository{
		findFn: func(ctx context.Context, challenge string) (entity.Result, error) {
			return appleResult(), nil
		},
	}
	repo := NewCachingResultRepository(nil, FixedTTL(5*time.Minute), inner, "results")

	r, err := repo.FindByName(context.Background(), "apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Challenge != "apple" || inner.findCall != 1 {
		t.Errorf("unexpected result %+v (calls=%d)", r, inner.findCall)
	}
}

// TestCachingResultRepository_FindByName_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestCachingResultRepository_FindByName_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(appleResult())
	mock.ExpectGet("results:apple").SetVal(string(cachedJSON))

	inner := &mockResultRepository{}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	r, err := repo.FindByName(context.Background(), "apple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.findCall != 0 {
		t.Error("inner repository should not be called on cache hit")
	}
	if r.IndexType != entity.DTypeDatetime64NS || len(r.Columns) != 4 {
		t.Errorf("unexpected cached result %+v", r)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_FindByName_CacheMiss はキャッシュミス時にDBから取得し、キャッシュに保存することを検証します。
func TestCachingResultRepository_FindByName_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(appleResult())
	mock.ExpectGet("results:apple").RedisNil()
	mock.ExpectSet("results:apple", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockResultRepository{
		findFn: func(ctx context.Context, challenge string) (entity.Result, error) {
			return appleResult(), nil
		},
	}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	if _, err := repo.FindByName(context.Background(), "apple"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.findCall != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.findCall)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_FindByName_NotFound は見つからない結果をキャッシュしないことを検証します。
func TestCachingResultRepository_FindByName_NotFound(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("results:banana").RedisNil()

	inner := &mockResultRepository{
		findFn: func(ctx context.Context, challenge string) (entity.Result, error) {
			return entity.Result{}, domain.ErrResultNotFound
		},
	}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	_, err := repo.FindByName(context.Background(), "banana")
	if !errors.Is(err, domain.ErrResultNotFound) {
		t.Errorf("expected ErrResultNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_FindByName_CorruptedCache は破損したキャッシュを削除してDBにフォールバックすることを検証します。
func TestCachingResultRepository_FindByName_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedJSON, _ := json.Marshal(appleResult())
	mock.ExpectGet("results:apple").SetVal("invalid json")
	mock.ExpectDel("results:apple").SetVal(1)
	mock.ExpectSet("results:apple", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockResultRepository{
		findFn: func(ctx context.Context, challenge string) (entity.Result, error) {
			return appleResult(), nil
		},
	}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	if _, err := repo.FindByName(context.Background(), "apple"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_Save はSave後にキャッシュが無効化されることを検証します。
func TestCachingResultRepository_Save(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("results:my_apple").SetVal(1)

	saved := false
	inner := &mockResultRepository{
		saveFn: func(ctx context.Context, r entity.Result) error {
			saved = true
			return nil
		},
	}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	r := appleResult()
	r.Challenge = "my apple"
	if err := repo.Save(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Error("inner repository should be called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_Save_InnerError は内部エラー時にキャッシュを触らないことを検証します。
func TestCachingResultRepository_Save_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	inner := &mockResultRepository{
		saveFn: func(ctx context.Context, r entity.Result) error { return expectedErr },
	}
	repo := NewCachingResultRepository(rdb, FixedTTL(5*time.Minute), inner, "results")

	err := repo.Save(context.Background(), appleResult())
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingResultRepository_FindByName_TTLUntilClose は書き込み時刻ごとに次の引け（16:00 NY）までのTTLが使われることを検証します。
func TestCachingResultRepository_FindByName_TTLUntilClose(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockResultRepository{
		findFn: func(ctx context.Context, challenge string) (entity.Result, error) {
			return appleResult(), nil
		},
	}
	repo := NewCachingResultRepository(rdb, TimeUntilNextClose, inner, "results")

	expectedJSON, _ := json.Marshal(appleResult())
	clock := []time.Time{
		time.Date(2026, 10, 19, 16, 1, 0, 0, ny),  // 引け直後: 翌日の引けまで
		time.Date(2026, 10, 20, 15, 59, 0, 0, ny), // 引け直前: 1分だけ
	}
	mock.ExpectGet("results:apple").RedisNil()
	mock.ExpectSet("results:apple", expectedJSON, 23*time.Hour+59*time.Minute).SetVal("OK")
	mock.ExpectGet("results:apple").RedisNil()
	mock.ExpectSet("results:apple", expectedJSON, time.Minute).SetVal("OK")

	for _, now := range clock {
		repo.now = func() time.Time { return now }
		if _, err := repo.FindByName(context.Background(), "apple"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
