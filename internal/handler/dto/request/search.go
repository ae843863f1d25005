package request

import (
	"time"

	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type SearchRequest struct {
	Location    string `form:"location" binding:"max=200"`
	Destination string `form:"destination" binding:"max=200"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	PartySize   int    `form:"partySize" binding:"omitempty,min=1,max=50"`
	Category    string `form:"category" binding:"max=100"`
	MinPrice    string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice    string `form:"maxPrice" binding:"omitempty,numeric"`
}

func (r SearchRequest) ToFilters() (shared.SearchFilters, error) {
	f := shared.SearchFilters{
		Location:    r.Location,
		Destination: r.Destination,
		PartySize:   r.PartySize,
		Category:    r.Category,
	}

	var err error
	if f.From, err = optionalDate(r.From); err != nil {
		return shared.SearchFilters{}, err
	}
	if f.To, err = optionalDate(r.To); err != nil {
		return shared.SearchFilters{}, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return shared.SearchFilters{}, errs.Mark(errs.New("to must not precede from"), errs.ErrDomainValidation)
	}
	if f.MinPrice, err = optionalDecimal(r.MinPrice); err != nil {
		return shared.SearchFilters{}, err
	}
	if f.MaxPrice, err = optionalDecimal(r.MaxPrice); err != nil {
		return shared.SearchFilters{}, err
	}
	return f, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "parse date %q", s), errs.ErrDomainValidation)
	}
	return &t, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "parse price %q", s), errs.ErrInvalidMoney)
	}
	return &d, nil
}
