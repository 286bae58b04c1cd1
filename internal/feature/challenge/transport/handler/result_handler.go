// Package handler はchallengeフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_frame/internal/feature/challenge/domain"
	"stock_frame/internal/feature/challenge/domain/entity"
	"stock_frame/internal/feature/challenge/transport/http/dto"
)

// CheckUsecase は結果の保存・取得・検証のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CheckUsecase interface {
	Check(ctx context.Context, challenge string) (entity.Report, error)
	GetResult(ctx context.Context, challenge string) (entity.Result, error)
	SaveResult(ctx context.Context, r entity.Result) (entity.Result, error)
}

// PrepareUsecase は銘柄データから結果を生成するユースケースインターフェースです。
type PrepareUsecase interface {
	Prepare(ctx context.Context, challenge, symbol string) (entity.Result, error)
}

// ResultHandler はチャレンジ結果のHTTPリクエストを処理します。
type ResultHandler struct {
	check   CheckUsecase
	prepare PrepareUsecase
}

// NewResultHandler は新しいResultHandlerを生成します。prepareはnilでも構いません。
func NewResultHandler(check CheckUsecase, prepare PrepareUsecase) *ResultHandler {
	return &ResultHandler{check: check, prepare: prepare}
}

// Put は外部で用意された結果を保存し、保存された内容（正規化された名前と作成日時）を返します。
//
// エンドポイント例:
// PUT /results/:name
func (h *ResultHandler) Put(c *gin.Context) {
	var req dto.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	saved, err := h.check.SaveResult(c.Request.Context(), req.ToEntity(c.Param("name")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResultResponse(saved))
}

// Get は保存済みの結果を返します。
//
// エンドポイント例:
// GET /results/:name
func (h *ResultHandler) Get(c *gin.Context) {
	r, err := h.check.GetResult(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewResultResponse(r))
}

// Check は保存済みの結果に全チェックを実行します。
// すべて成功すれば200、失敗があれば422を返します（どちらもレポート本文付き）。
//
// エンドポイント例:
// GET /results/:name/check
func (h *ResultHandler) Check(c *gin.Context) {
	rep, err := h.check.Check(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if !rep.Passed() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.NewReportResponse(rep))
}

// Prepare は銘柄データを取得・整形して結果を保存します。
//
// エンドポイント例:
// POST /results/:name/prepare?symbol=AAPL
func (h *ResultHandler) Prepare(c *gin.Context) {
	if h.prepare == nil {
		c.JSON(http.StatusNotImplemented, dto.ErrorResponse{Error: "prepare is not configured"})
		return
	}
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol is required"})
		return
	}
	r, err := h.prepare.Prepare(c.Request.Context(), c.Param("name"), symbol)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewResultResponse(r))
}

// writeError はドメインエラーをHTTPステータスに変換します。
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrResultNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyChallenge),
		errors.Is(err, domain.ErrChallengeTooLong):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingDateColumn),
		errors.Is(err, domain.ErrUnparsableDatetime),
		errors.Is(err, domain.ErrDuplicateColumn),
		errors.Is(err, domain.ErrRaggedRow):
		status = http.StatusUnprocessableEntity
	default:
		slog.Error("challenge request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
