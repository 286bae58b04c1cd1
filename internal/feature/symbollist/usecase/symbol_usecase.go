// Package usecase implements the business logic for the symbol catalogue.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_frame/internal/feature/symbollist/domain"
	"stock_frame/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for the symbol catalogue.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, s entity.Symbol) error
	SetActive(ctx context.Context, code string, active bool) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// NormalizeCode trims and upper-cases a ticker code and checks its length.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", domain.ErrEmptyCode
	}
	if len(code) > domain.MaxCodeLength {
		return "", fmt.Errorf("%w: %q", domain.ErrCodeTooLong, code)
	}
	return code, nil
}

// ListActiveSymbols returns all active symbols in sort order.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ActiveCodes returns the codes bulk preparation should run for.
// An empty catalogue is reported as domain.ErrNoActiveSymbols.
func (u *SymbolUsecase) ActiveCodes(ctx context.Context) ([]string, error) {
	codes, err := u.repo.ListActiveCodes(ctx)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, domain.ErrNoActiveSymbols
	}
	return codes, nil
}

// Register adds a symbol to the catalogue, or updates and reactivates an existing one.
func (u *SymbolUsecase) Register(ctx context.Context, s entity.Symbol) (entity.Symbol, error) {
	code, err := NormalizeCode(s.Code)
	if err != nil {
		return entity.Symbol{}, err
	}
	s.Code = code
	s.Name = strings.TrimSpace(s.Name)
	s.Exchange = strings.TrimSpace(s.Exchange)
	s.Active = true
	if err := u.repo.Upsert(ctx, s); err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}

// Deactivate removes a symbol from bulk preparation without deleting it.
func (u *SymbolUsecase) Deactivate(ctx context.Context, code string) error {
	code, err := NormalizeCode(code)
	if err != nil {
		return err
	}
	return u.repo.SetActive(ctx, code, false)
}
