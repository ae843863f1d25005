package cart

import (
	"math"
	"strings"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Hold is a provider-side soft reservation attached to an item.
// A nil Expiry means the provider did not report one and the hold is treated as non-expiring.
type Hold struct {
	ID     string
	Expiry *time.Time
}

func (h Hold) HasExpiry() bool {
	return h.Expiry != nil
}

func (h Hold) Expired(now time.Time) bool {
	return h.Expiry != nil && now.After(*h.Expiry)
}

type Item struct {
	id          uuid.UUID
	customerID  uuid.UUID
	serviceID   uuid.UUID
	productID   string
	productName string
	unitPrice   decimal.Decimal
	currency    string
	start       time.Time
	end         *time.Time
	hold        *Hold
	payload     Payload
	createdAt   time.Time
}

type NewItemParams struct {
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Start       time.Time
	End         *time.Time
	Payload     Payload
}

func NewItem(p NewItemParams, now time.Time) (*Item, error) {
	if p.CustomerID == uuid.Nil || p.ServiceID == uuid.Nil {
		return nil, errs.Mark(errs.New("customer and service are required"), ErrInvalidItem)
	}
	if strings.TrimSpace(p.ProductID) == "" {
		return nil, errs.Mark(errs.New("product id is required"), ErrInvalidItem)
	}
	if !money.IsPositive(p.UnitPrice) {
		return nil, errs.Mark(errs.New("unit price must be positive"), errs.ErrInvalidMoney)
	}
	if p.Start.IsZero() {
		return nil, errs.Mark(errs.New("start date is required"), ErrInvalidItem)
	}
	if p.End != nil && !p.End.After(p.Start) {
		return nil, errs.Mark(errs.New("end must be after start"), ErrInvalidItem)
	}
	if p.Payload == nil {
		return nil, errs.Mark(errs.New("payload is required"), errs.ErrUnknownVariant)
	}
	if err := p.Payload.Validate(); err != nil {
		return nil, err
	}
	if needsEnd(p.Payload.Capability()) && p.End == nil {
		return nil, errs.Mark(errs.Newf("%s requires an end date", p.Payload.Capability()), ErrInvalidItem)
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "USD"
	}

	return &Item{
		id:          uuid.New(),
		customerID:  p.CustomerID,
		serviceID:   p.ServiceID,
		productID:   p.ProductID,
		productName: p.ProductName,
		unitPrice:   money.Round(p.UnitPrice),
		currency:    currency,
		start:       p.Start,
		end:         p.End,
		payload:     p.Payload,
		createdAt:   now,
	}, nil
}

type ReconstructParams struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	ServiceID   uuid.UUID
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Currency    string
	Start       time.Time
	End         *time.Time
	Hold        *Hold
	Payload     Payload
	CreatedAt   time.Time
}

// ReconstructItem rebuilds a stored item without re-running creation rules
func ReconstructItem(p ReconstructParams) *Item {
	return &Item{
		id:          p.ID,
		customerID:  p.CustomerID,
		serviceID:   p.ServiceID,
		productID:   p.ProductID,
		productName: p.ProductName,
		unitPrice:   p.UnitPrice,
		currency:    p.Currency,
		start:       p.Start,
		end:         p.End,
		hold:        p.Hold,
		payload:     p.Payload,
		createdAt:   p.CreatedAt,
	}
}

func needsEnd(c catalog.Capability) bool {
	return c == catalog.CapabilityHotel || c == catalog.CapabilityVehicle
}

func (i *Item) ID() uuid.UUID                  { return i.id }
func (i *Item) CustomerID() uuid.UUID          { return i.customerID }
func (i *Item) ServiceID() uuid.UUID           { return i.serviceID }
func (i *Item) Capability() catalog.Capability { return i.payload.Capability() }
func (i *Item) ProductID() string              { return i.productID }
func (i *Item) ProductName() string            { return i.productName }
func (i *Item) UnitPrice() decimal.Decimal     { return i.unitPrice }
func (i *Item) Currency() string               { return i.currency }
func (i *Item) Start() time.Time               { return i.start }
func (i *Item) End() *time.Time                { return i.end }
func (i *Item) Payload() Payload               { return i.payload }
func (i *Item) CreatedAt() time.Time           { return i.createdAt }

func (i *Item) PartySize() int {
	if n := i.payload.PartySize(); n > 0 {
		return n
	}
	return 1
}

func (i *Item) Hold() (Hold, bool) {
	if i.hold == nil {
		return Hold{}, false
	}
	return *i.hold, true
}

func (i *Item) HasHold() bool {
	return i.hold != nil && i.hold.ID != ""
}

func (i *Item) AttachHold(h Hold) error {
	if strings.TrimSpace(h.ID) == "" {
		return ErrHoldRequired
	}
	i.hold = &h
	return nil
}

// ConsumableAt reports whether checkout may book this item at now
func (i *Item) ConsumableAt(now time.Time) bool {
	return i.HasHold() && !i.hold.Expired(now)
}

// Quantity is the multiplier applied to the unit price
func (i *Item) Quantity() int {
	switch i.Capability() {
	case catalog.CapabilityFlight, catalog.CapabilityPackage:
		return i.PartySize()
	case catalog.CapabilityHotel, catalog.CapabilityVehicle:
		return max(1, i.days())
	default:
		return 1
	}
}

func (i *Item) Amount() decimal.Decimal {
	return money.Round(i.unitPrice.Mul(decimal.NewFromInt(int64(i.Quantity()))))
}

func (i *Item) days() int {
	if i.end == nil {
		return 0
	}
	return int(math.Ceil(i.end.Sub(i.start).Hours() / 24))
}

// Total sums the amounts of the given items
func Total(items []*Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}
