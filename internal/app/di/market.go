// Package di provides dependency injection factories for creating application components.
package di

import (
	challengeadapters "stock_frame/internal/feature/challenge/adapters"
	"stock_frame/internal/feature/challenge/usecase"
	"stock_frame/internal/platform/externalapi/twelvedata"
	infrahttp "stock_frame/internal/platform/http"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client.
func NewMarket() *twelvedata.TwelveDataMarket {
	cfg := twelvedata.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient)
}

// SourceOptions selects where raw price tables come from.
type SourceOptions struct {
	CSVFile string // single file used for every symbol
	CSVDir  string // directory of <symbol>.csv files
}

// NewFrameSource returns a CSV source when a file or directory is given,
// otherwise the Twelve Data market.
func NewFrameSource(opts SourceOptions) usecase.FrameSource {
	switch {
	case opts.CSVFile != "":
		return challengeadapters.NewCSVFileSource(opts.CSVFile)
	case opts.CSVDir != "":
		return challengeadapters.NewCSVDirSource(opts.CSVDir)
	default:
		return NewMarket()
	}
}
