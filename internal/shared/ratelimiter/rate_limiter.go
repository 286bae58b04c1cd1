// Package ratelimiter throttles calls to external market-data sources.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は外部データ取得の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で呼び出し回数を制限します。
// 待機中はロックを保持しないため、キャンセルされた呼び出しが他の呼び出しを塞ぐことはありません。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time // 現在のウィンドウの開始時刻（予約済みの将来のウィンドウを指すこともある）

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRateLimiter は新しいRateLimiterを生成します。limitが0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		after:     time.After,
	}
}

// reserve は呼び出し枠を1つ確保し、その枠が使えるまでの待機時間を返します。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	if rl.count >= rl.limit {
		// 次のウィンドウの先頭枠を予約する
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	return rl.lastReset.Sub(now)
}

// WaitIfNeeded は上限に達している場合、次のウィンドウまで待機します。
// ctxがキャンセルされた場合は待機をやめてctx.Err()を返します。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}

	wait := rl.reserve()
	if wait <= 0 {
		return ctx.Err()
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
	select {
	case <-rl.after(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
