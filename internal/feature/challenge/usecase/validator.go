// Package usecase はチャレンジ結果の準備と検証のビジネスロジックを実装します。
package usecase

import (
	"log/slog"
	"sort"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
)

const (
	// ExpectedIndexName はインデックスに期待される列名です。
	ExpectedIndexName = "date"
	// DatetimeHint はインデックスが日時型でない場合に表示するメッセージです。
	DatetimeHint = "Check you converted the 'date' column into a datetime."
)

// RequiredColumns は結果に含まれていなければならない列名です。
var RequiredColumns = []string{"open", "close", "high", "low"}

// Check はResultに対する1つの検証です。失敗時は*domain.AssertionFailureを返します。
type Check struct {
	Name string
	Run  func(r entity.Result) error
}

// Validator はResultに対して全チェックを独立に実行します。
type Validator struct {
	checks []Check
}

// NewValidator は3つの標準チェックを持つValidatorを生成します。
func NewValidator() *Validator {
	return &Validator{checks: []Check{
		{Name: "index_name_is_date", Run: CheckIndexName},
		{Name: "index_is_timestamp", Run: CheckIndexIsTimestamp},
		{Name: "required_columns", Run: CheckRequiredColumns},
	}}
}

// Checks は登録済みのチェックを返します。
func (v *Validator) Checks() []Check {
	return v.checks
}

// Validate は全チェックを実行し、レポートを返します。
// あるチェックが失敗しても残りのチェックは実行されます。
func (v *Validator) Validate(r entity.Result) entity.Report {
	rep := entity.Report{Challenge: r.Challenge, Cases: make([]entity.CaseResult, 0, len(v.checks))}
	for _, c := range v.checks {
		cr := entity.CaseResult{Name: c.Name, Passed: true}
		if err := c.Run(r); err != nil {
			cr.Passed = false
			cr.Message = err.Error()
			slog.Debug("check failed", "challenge", r.Challenge, "check", c.Name, "error", err)
		}
		rep.Cases = append(rep.Cases, cr)
	}
	return rep
}

// CheckIndexName はインデックス名が"date"であることを検証します。
func CheckIndexName(r entity.Result) error {
	if r.IndexName != ExpectedIndexName {
		return &domain.AssertionFailure{
			Check:    "index_name_is_date",
			Expected: ExpectedIndexName,
			Actual:   r.IndexName,
		}
	}
	return nil
}

// CheckIndexIsTimestamp はインデックスがナノ秒精度の日時型であることを検証します。
func CheckIndexIsTimestamp(r entity.Result) error {
	if !r.IndexType.IsDatetimeNS() {
		return &domain.AssertionFailure{
			Check:    "index_is_timestamp",
			Expected: entity.DTypeDatetime64NS,
			Actual:   r.IndexType,
			Msg:      DatetimeHint,
		}
	}
	return nil
}

// CheckRequiredColumns は必須列がすべて含まれていることを検証します。
// 余分な列や列の順序は問いません。
func CheckRequiredColumns(r entity.Result) error {
	if missing := MissingColumns(r); len(missing) > 0 {
		slog.Debug("required columns missing", "challenge", r.Challenge, "missing", missing)
		return &domain.AssertionFailure{
			Check:    "required_columns",
			Expected: true,
			Actual:   false,
		}
	}
	return nil
}

// MissingColumns は結果に欠けている必須列をソート済みで返します。
func MissingColumns(r entity.Result) []string {
	have := make(map[string]struct{}, len(r.Columns))
	for _, c := range r.Columns {
		have[c] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return missing
}
