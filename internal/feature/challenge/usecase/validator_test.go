package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/usecase"
)

// validResult は全チェックを通過する結果です。
func validResult() entity.Result {
	return entity.Result{
		Challenge: "apple",
		IndexName: "date",
		IndexType: entity.DTypeDatetime64NS,
		Columns:   []string{"open", "high", "low", "close", "volume"},
	}
}

func TestCheckIndexName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		indexName string
		wantErr   bool
	}{
		{name: "success: date", indexName: "date", wantErr: false},
		{name: "failure: capitalised", indexName: "Date", wantErr: true},
		{name: "failure: empty", indexName: "", wantErr: true},
		{name: "failure: datetime", indexName: "datetime", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validResult()
			r.IndexName = tt.indexName
			err := usecase.CheckIndexName(r)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var af *domain.AssertionFailure
			require.True(t, errors.As(err, &af))
			assert.Equal(t, "date", af.Expected)
			assert.Equal(t, tt.indexName, af.Actual)
			assert.Empty(t, af.Msg, "index name failure carries no hint")
		})
	}
}

func TestCheckIndexIsTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		indexType entity.DType
		wantErr   bool
	}{
		{name: "success: canonical tag", indexType: "<M8[ns]", wantErr: false},
		{name: "success: alias", indexType: "datetime64[ns]", wantErr: false},
		{name: "failure: int64", indexType: "int64", wantErr: true},
		{name: "failure: object", indexType: entity.DTypeObject, wantErr: true},
		{name: "failure: microsecond precision", indexType: "<M8[us]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validResult()
			r.IndexType = tt.indexType
			err := usecase.CheckIndexIsTimestamp(r)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var af *domain.AssertionFailure
			require.True(t, errors.As(err, &af))
			assert.Equal(t, "Check you converted the 'date' column into a datetime.", af.Msg)
			assert.Contains(t, err.Error(), "Check you converted the 'date' column into a datetime.")
		})
	}
}

func TestCheckRequiredColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		columns     []string
		wantErr     bool
		wantMissing []string
	}{
		{
			name:    "success: exact set",
			columns: []string{"open", "close", "high", "low"},
		},
		{
			name:    "success: extra columns in another order",
			columns: []string{"volume", "low", "adj_close", "high", "close", "open"},
		},
		{
			name:        "failure: close missing",
			columns:     []string{"open", "high", "low", "volume"},
			wantErr:     true,
			wantMissing: []string{"close"},
		},
		{
			name:        "failure: case sensitive",
			columns:     []string{"Open", "Close", "High", "Low"},
			wantErr:     true,
			wantMissing: []string{"close", "high", "low", "open"},
		},
		{
			name:        "failure: no columns",
			columns:     nil,
			wantErr:     true,
			wantMissing: []string{"close", "high", "low", "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validResult()
			r.Columns = tt.columns
			err := usecase.CheckRequiredColumns(r)
			assert.Equal(t, tt.wantMissing, usecase.MissingColumns(r))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var af *domain.AssertionFailure
			require.True(t, errors.As(err, &af))
			assert.Empty(t, af.Msg)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	v := usecase.NewValidator()
	require.Len(t, v.Checks(), 3)

	rep := v.Validate(validResult())
	assert.True(t, rep.Passed())
	assert.Equal(t, "apple", rep.Challenge)
	for _, c := range rep.Cases {
		assert.True(t, c.Passed, c.Name)
		assert.Empty(t, c.Message, c.Name)
	}

	// 1つの失敗が他のチェックを止めないこと
	bad := validResult()
	bad.IndexType = "int64"
	rep = v.Validate(bad)
	assert.False(t, rep.Passed())
	assert.Equal(t, 1, rep.Failed())
	assert.Equal(t, []entity.CaseResult{
		{Name: "index_name_is_date", Passed: true},
		{
			Name:    "index_is_timestamp",
			Passed:  false,
			Message: `index_is_timestamp: "int64" != "<M8[ns]" : Check you converted the 'date' column into a datetime.`,
		},
		{Name: "required_columns", Passed: true},
	}, rep.Cases)
}

func TestAssertionFailure_Error(t *testing.T) {
	t.Parallel()

	err := usecase.CheckIndexName(entity.Result{IndexName: "Date"})
	assert.EqualError(t, err, `index_name_is_date: "Date" != "date"`)

	err = usecase.CheckRequiredColumns(entity.Result{})
	assert.EqualError(t, err, "required_columns: false != true")
}
