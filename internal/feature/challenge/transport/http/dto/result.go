// Package dto はchallengeフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

import (
	"time"

	"stock_frame/internal/feature/challenge/domain/entity"
)

// ResultRequest は PUT /results/:name のリクエストボディです。
type ResultRequest struct {
	IndexName string   `json:"index_name"`
	IndexType string   `json:"index_type"`
	Columns   []string `json:"columns"`
	Rows      int      `json:"rows"`
}

// ToEntity はリクエストをドメインの結果に変換します。
func (r ResultRequest) ToEntity(challenge string) entity.Result {
	return entity.Result{
		Challenge: challenge,
		IndexName: r.IndexName,
		IndexType: entity.DType(r.IndexType),
		Columns:   r.Columns,
		Rows:      r.Rows,
	}
}

// ResultResponse は保存済みの結果を表すレスポンスDTOです。
type ResultResponse struct {
	Challenge string   `json:"challenge"`
	IndexName string   `json:"index_name"`
	IndexType string   `json:"index_type"`
	Columns   []string `json:"columns"`
	Rows      int      `json:"rows"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// NewResultResponse はドメインの結果をレスポンスに変換します。
func NewResultResponse(r entity.Result) ResultResponse {
	out := ResultResponse{
		Challenge: r.Challenge,
		IndexName: r.IndexName,
		IndexType: string(r.IndexType),
		Columns:   r.Columns,
		Rows:      r.Rows,
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if !r.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// CaseResponse は1チェックの結果です。
type CaseResponse struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// ReportResponse は GET /results/:name/check のレスポンスDTOです。
type ReportResponse struct {
	Challenge string         `json:"challenge"`
	Passed    bool           `json:"passed"`
	Failed    int            `json:"failed"`
	Cases     []CaseResponse `json:"cases"`
}

// NewReportResponse はレポートをレスポンスに変換します。
func NewReportResponse(rep entity.Report) ReportResponse {
	out := ReportResponse{
		Challenge: rep.Challenge,
		Passed:    rep.Passed(),
		Failed:    rep.Failed(),
		Cases:     make([]CaseResponse, 0, len(rep.Cases)),
	}
	for _, c := range rep.Cases {
		out.Cases = append(out.Cases, CaseResponse{Name: c.Name, Passed: c.Passed, Message: c.Message})
	}
	return out
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
