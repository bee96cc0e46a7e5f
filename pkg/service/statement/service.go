// Package statement implements the balance and statement aggregator. All
// views are read-only folds over the movement set; no balance is ever stored
// or cached, so staleness is bounded only by when the movements were read.
package statement

import (
	"context"
	"log/slog"
	"time"

	"github.com/albahri/sarraf/pkg/currency"
	"github.com/albahri/sarraf/pkg/domain/ledger"
	"github.com/albahri/sarraf/pkg/domain/money"
	"github.com/albahri/sarraf/pkg/repository"
	"github.com/google/uuid"
)

// Service is the balance/statement aggregator.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates an aggregator.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// signed converts a movement amount to its balance contribution under the
// canonical sign convention: incoming adds (in the customer's favor),
// outgoing subtracts.
func signed(t ledger.MovementType, amt money.Money) int64 {
	if t == ledger.MovementOutgoing {
		return -amt.Amount()
	}
	return amt.Amount()
}

// CurrentBalance folds the customer's non-satellite movements in one
// currency: +amount for incoming, -amount for outgoing. Positive means the
// balance is in the customer's favor (the shop owes them); negative means
// the customer owes the shop. Label inversions ("له"/"عليه") are
// presentation only, see BalanceLabel.
func (s *Service) CurrentBalance(ctx context.Context, customerID uuid.UUID, code currency.Code) (money.Money, error) {
	movements, err := s.listMovements(ctx, repository.MovementFilter{
		CustomerID:        &customerID,
		Currency:          code,
		ExcludeSatellites: true,
	})
	if err != nil {
		return money.Money{}, err
	}
	var total int64
	for _, m := range movements {
		total += signed(m.Type, m.Amount)
	}
	return money.NewFromData(total, code.String()), nil
}

// CombinedAmount returns the movement amount plus the amounts of its linked
// commission satellites, so a statement line shows what actually moved.
// Only satellites matching the parent's customer, type and currency count.
func (s *Service) CombinedAmount(ctx context.Context, m *ledger.Movement) (money.Money, error) {
	satellites, err := s.listSatellites(ctx, m.ID)
	if err != nil {
		return money.Money{}, err
	}
	return combine(m, satellites), nil
}

func combine(m *ledger.Movement, satellites []*ledger.Movement) money.Money {
	total := m.Amount.Amount()
	for _, sat := range satellites {
		if sat.LinksTo(m) {
			total += sat.Amount.Amount()
		}
	}
	return money.NewFromData(total, m.Amount.Currency().String())
}

// Line is one row of a running-balance statement: the movement, its
// combined amount (base + commission satellites) and the balance after it.
type Line struct {
	Movement *ledger.Movement
	Combined money.Money
	Balance  money.Money
}

// RunningBalanceSeries returns the customer's statement in one currency:
// movements sorted by created_at ascending, folded cumulatively using the
// combined amount, with the post-movement balance on each line. This is the
// audit trail account-statement documents are printed from.
func (s *Service) RunningBalanceSeries(ctx context.Context, customerID uuid.UUID, code currency.Code) ([]Line, error) {
	movements, err := s.listMovements(ctx, repository.MovementFilter{
		CustomerID: &customerID,
		Currency:   code,
	})
	if err != nil {
		return nil, err
	}

	satellitesByParent := make(map[uuid.UUID][]*ledger.Movement)
	for _, m := range movements {
		if m.IsSatellite() {
			satellitesByParent[*m.RelatedCommissionMovementID] = append(satellitesByParent[*m.RelatedCommissionMovementID], m)
		}
	}

	var running int64
	lines := make([]Line, 0, len(movements))
	for _, m := range movements {
		if m.IsSatellite() {
			continue
		}
		combined := combine(m, satellitesByParent[m.ID])
		running += signed(m.Type, combined)
		lines = append(lines, Line{
			Movement: m,
			Combined: combined,
			Balance:  money.NewFromData(running, code.String()),
		})
	}
	return lines, nil
}

// DebtSummary groups every customer's per-currency balance by sign. A
// negative balance (customer owes the shop) contributes to OwedToShop; a
// positive one to OwedByShop. Currencies are never netted against each
// other.
type DebtSummary struct {
	OwedToShop map[currency.Code]money.Money
	OwedByShop map[currency.Code]money.Money
}

// DebtSummary computes the shop-wide debt summary across all customers.
func (s *Service) DebtSummary(ctx context.Context) (*DebtSummary, error) {
	movements, err := s.listMovements(ctx, repository.MovementFilter{ExcludeSatellites: true})
	if err != nil {
		return nil, err
	}

	type key struct {
		customer uuid.UUID
		code     string
	}
	balances := make(map[key]int64)
	for _, m := range movements {
		k := key{customer: m.CustomerID, code: m.Amount.Currency().String()}
		balances[k] += signed(m.Type, m.Amount)
	}

	summary := &DebtSummary{
		OwedToShop: make(map[currency.Code]money.Money),
		OwedByShop: make(map[currency.Code]money.Money),
	}
	for k, bal := range balances {
		code := currency.Code(k.code)
		switch {
		case bal < 0:
			prev := summary.OwedToShop[code]
			summary.OwedToShop[code] = money.NewFromData(prev.Amount()-bal, k.code)
		case bal > 0:
			prev := summary.OwedByShop[code]
			summary.OwedByShop[code] = money.NewFromData(prev.Amount()+bal, k.code)
		}
	}
	return summary, nil
}

// ShopPosition derives the shop's own position as the complement of all
// customer balances per currency. The shop has no movement rows; it is
// always residual.
func (s *Service) ShopPosition(ctx context.Context) (map[currency.Code]money.Money, error) {
	movements, err := s.listMovements(ctx, repository.MovementFilter{ExcludeSatellites: true})
	if err != nil {
		return nil, err
	}
	totals := make(map[currency.Code]int64)
	for _, m := range movements {
		totals[m.Amount.Currency()] += signed(m.Type, m.Amount)
	}
	position := make(map[currency.Code]money.Money, len(totals))
	for code, total := range totals {
		position[code] = money.NewFromData(-total, code.String())
	}
	return position, nil
}

// CashFlowTotals are the per-currency totals of a period.
type CashFlowTotals struct {
	TotalReceived money.Money
	TotalPaid     money.Money
	NetFlow       money.Money
}

// CashFlow sums the period's movements per currency: outgoing movements are
// money received by the shop, incoming movements are money paid out.
// Internal transfers and commission satellites are excluded. Commissions on
// outgoing movements are folded into the TotalPaid bucket of the
// commission's own currency, which may differ from the movement currency;
// this cross-currency spill is intentional.
func (s *Service) CashFlow(ctx context.Context, from, to time.Time) (map[currency.Code]*CashFlowTotals, error) {
	movements, err := s.listMovements(ctx, repository.MovementFilter{
		From:              &from,
		To:                &to,
		ExcludeSatellites: true,
	})
	if err != nil {
		return nil, err
	}

	received := make(map[currency.Code]int64)
	paid := make(map[currency.Code]int64)
	for _, m := range movements {
		if m.IsInternalTransfer {
			continue
		}
		code := m.Amount.Currency()
		switch m.Type {
		case ledger.MovementOutgoing:
			received[code] += m.Amount.Amount()
			if m.Commission != nil && m.Commission.IsPositive() {
				paid[m.Commission.Currency()] += m.Commission.Amount()
			}
		case ledger.MovementIncoming:
			paid[code] += m.Amount.Amount()
		}
	}

	out := make(map[currency.Code]*CashFlowTotals)
	codes := make(map[currency.Code]struct{})
	for c := range received {
		codes[c] = struct{}{}
	}
	for c := range paid {
		codes[c] = struct{}{}
	}
	for c := range codes {
		out[c] = &CashFlowTotals{
			TotalReceived: money.NewFromData(received[c], c.String()),
			TotalPaid:     money.NewFromData(paid[c], c.String()),
			NetFlow:       money.NewFromData(received[c]-paid[c], c.String()),
		}
	}
	return out, nil
}

// ListMovements returns a customer's movements, satellites included, for
// plain listing screens.
func (s *Service) ListMovements(ctx context.Context, customerID uuid.UUID, code currency.Code) ([]*ledger.Movement, error) {
	return s.listMovements(ctx, repository.MovementFilter{
		CustomerID: &customerID,
		Currency:   code,
	})
}

func (s *Service) listMovements(ctx context.Context, f repository.MovementFilter) ([]*ledger.Movement, error) {
	var out []*ledger.Movement
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		out, err = repo.List(ctx, f)
		return err
	})
	return out, err
}

func (s *Service) listSatellites(ctx context.Context, parentID uuid.UUID) ([]*ledger.Movement, error) {
	var out []*ledger.Movement
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.MovementRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListSatellites(ctx, parentID)
		return err
	})
	return out, err
}
