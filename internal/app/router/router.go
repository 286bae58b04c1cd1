// Package router wires the HTTP routes of the result service.
package router

import (
	"github.com/gin-gonic/gin"

	challengehandler "stock_frame/internal/feature/challenge/transport/handler"
	symbolhandler "stock_frame/internal/feature/symbollist/transport/handler"
	platformhandler "stock_frame/internal/platform/http/handler"
)

// NewRouter builds the gin engine. pingers feed /readyz.
func NewRouter(results *challengehandler.ResultHandler, symbols *symbolhandler.SymbolHandler, pingers map[string]platformhandler.Pinger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(pingers))

	g := r.Group("/results")
	{
		g.PUT("/:name", results.Put)
		g.GET("/:name", results.Get)
		g.GET("/:name/check", results.Check)
		g.POST("/:name/prepare", results.Prepare)
	}

	// 一括準備の対象銘柄
	sg := r.Group("/symbols")
	{
		sg.GET("", symbols.List)
		sg.PUT("/:code", symbols.Put)
		sg.DELETE("/:code", symbols.Delete)
	}

	return r
}
