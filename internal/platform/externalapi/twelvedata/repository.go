package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/usecase"
	"stock_frame/internal/platform/externalapi/twelvedata/dto"
)

// frameHeader は生成するフレームの列順です。日付列は文字列のまま渡し、変換はusecase側で行います。
var frameHeader = []string{"date", "open", "high", "low", "close", "volume"}

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するFrameSource実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketがFrameSourceを実装していることをコンパイル時に検証します。
var _ usecase.FrameSource = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg.withDefaults(), client: client}
}

// GetTimeSeries はTwelve Data APIから時系列データを取得します。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) (dto.TimeSeriesResponse, error) {
	var body dto.TimeSeriesResponse

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	q.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return body, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return body, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return body, fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return body, err
	}
	if body.Status == "error" {
		return body, fmt.Errorf("twelvedata: %s", body.Message)
	}
	return body, nil
}

// LoadFrame は銘柄の時系列データを取得し、文字列列のフレームに変換します。
// 価格はdecimalで検証・正規化します。
func (t *TwelveDataMarket) LoadFrame(ctx context.Context, symbol string) (*entity.Frame, error) {
	body, err := t.GetTimeSeries(ctx, symbol, t.cfg.Interval, t.cfg.OutputSize)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(body.Values))
	for _, v := range body.Values {
		row := []string{v.Datetime}
		for _, p := range []struct{ name, val string }{
			{"open", v.Open}, {"high", v.High}, {"low", v.Low}, {"close", v.Close},
		} {
			d, err := decimal.NewFromString(p.val)
			if err != nil {
				return nil, fmt.Errorf("parse %s %q: %w", p.name, p.val, err)
			}
			// 整数値でもfloat列として推定されるよう小数点を残す
			if d.IsInteger() {
				row = append(row, d.StringFixed(1))
			} else {
				row = append(row, d.String())
			}
		}
		// 出来高は整数として検証
		if _, err := strconv.ParseInt(v.Volume, 10, 64); err != nil {
			return nil, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
		row = append(row, v.Volume)
		records = append(records, row)
	}
	return entity.NewFrame(frameHeader, records)
}
