// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_frame/internal/feature/symbollist/domain"
	"stock_frame/internal/feature/symbollist/domain/entity"
	"stock_frame/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase は銘柄カタログに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	Register(ctx context.Context, s entity.Symbol) (entity.Symbol, error)
	Deactivate(ctx context.Context, code string) error
}

// SymbolHandler は銘柄カタログに関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

func toItem(s entity.Symbol) dto.SymbolItem {
	return dto.SymbolItem{Code: s.Code, Name: s.Name, Exchange: s.Exchange}
}

// List は一括準備の対象となる有効な銘柄の一覧を返します。
//
// エンドポイント例:
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Put は銘柄を登録（既存なら更新して有効化）します。
//
// エンドポイント例:
// PUT /symbols/:code
func (h *SymbolHandler) Put(c *gin.Context) {
	var req dto.RegisterSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.uc.Register(c.Request.Context(), entity.Symbol{
		Code:     c.Param("code"),
		Name:     req.Name,
		Exchange: req.Exchange,
		SortKey:  req.SortKey,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItem(s))
}

// Delete は銘柄を無効化します。データは残ります。
//
// エンドポイント例:
// DELETE /symbols/:code
func (h *SymbolHandler) Delete(c *gin.Context) {
	if err := h.uc.Deactivate(c.Request.Context(), c.Param("code")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCode), errors.Is(err, domain.ErrCodeTooLong):
		status = http.StatusBadRequest
	default:
		slog.Error("symbol request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
