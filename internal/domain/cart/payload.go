package cart

import (
	"encoding/json"
	"strings"
	"time"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
)

// Payload is the capability-specific part of a cart item
type Payload interface {
	Capability() catalog.Capability
	PartySize() int
	Validate() error
}

type Passenger struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	BirthDate      time.Time `json:"birthDate"`
}

type FlightPayload struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	CabinClass  string      `json:"cabinClass"`
	Passengers  []Passenger `json:"passengers"`
}

func (FlightPayload) Capability() catalog.Capability { return catalog.CapabilityFlight }

func (p FlightPayload) PartySize() int { return len(p.Passengers) }

func (p FlightPayload) Validate() error {
	if len(p.Passengers) == 0 {
		return errs.Mark(errs.New("flight requires at least one passenger"), ErrInvalidItem)
	}
	for _, ps := range p.Passengers {
		if strings.TrimSpace(ps.FirstName) == "" || strings.TrimSpace(ps.LastName) == "" {
			return errs.Mark(errs.New("passenger name is required"), ErrInvalidItem)
		}
	}
	return nil
}

type HotelPayload struct {
	RoomType string `json:"roomType"`
	Guests   int    `json:"guests"`
}

func (HotelPayload) Capability() catalog.Capability { return catalog.CapabilityHotel }

func (p HotelPayload) PartySize() int { return p.Guests }

func (p HotelPayload) Validate() error {
	if p.Guests <= 0 {
		return errs.Mark(errs.New("hotel room requires at least one guest"), ErrInvalidItem)
	}
	return nil
}

type VehiclePayload struct {
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
}

func (VehiclePayload) Capability() catalog.Capability { return catalog.CapabilityVehicle }

func (VehiclePayload) PartySize() int { return 1 }

func (p VehiclePayload) Validate() error {
	if strings.TrimSpace(p.PickupLocation) == "" {
		return errs.Mark(errs.New("vehicle pickup location is required"), ErrInvalidItem)
	}
	return nil
}

type TablePayload struct {
	Guests int `json:"guests"`
}

func (TablePayload) Capability() catalog.Capability { return catalog.CapabilityTable }

func (p TablePayload) PartySize() int { return p.Guests }

func (p TablePayload) Validate() error {
	if p.Guests <= 0 {
		return errs.Mark(errs.New("table requires at least one guest"), ErrInvalidItem)
	}
	return nil
}

type PackagePayload struct {
	Persons   int    `json:"persons"`
	Traveller string `json:"traveller"`
}

func (PackagePayload) Capability() catalog.Capability { return catalog.CapabilityPackage }

func (p PackagePayload) PartySize() int { return p.Persons }

func (p PackagePayload) Validate() error {
	if p.Persons <= 0 {
		return errs.Mark(errs.New("package requires at least one person"), ErrInvalidItem)
	}
	return nil
}

func MarshalPayload(p Payload) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalPayload decodes the stored JSON for the given capability
func UnmarshalPayload(c catalog.Capability, raw []byte) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch c {
	case catalog.CapabilityFlight:
		var v FlightPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case catalog.CapabilityHotel:
		var v HotelPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case catalog.CapabilityVehicle:
		var v VehiclePayload
		err = json.Unmarshal(raw, &v)
		p = v
	case catalog.CapabilityTable:
		var v TablePayload
		err = json.Unmarshal(raw, &v)
		p = v
	case catalog.CapabilityPackage:
		var v PackagePayload
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, errs.Mark(errs.Newf("capability %q", c), errs.ErrUnknownVariant)
	}
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode cart payload"), ErrInvalidItem)
	}
	return p, nil
}
