package catalog

import (
	"strings"

	"booking-orchestrator/internal/pkg/errs"
)

type Capability string

const (
	CapabilityFlight  Capability = "flight"
	CapabilityHotel   Capability = "hotel"
	CapabilityVehicle Capability = "vehicle"
	CapabilityTable   Capability = "table"
	CapabilityPackage Capability = "package"
)

var capabilities = []Capability{
	CapabilityFlight,
	CapabilityHotel,
	CapabilityVehicle,
	CapabilityTable,
	CapabilityPackage,
}

func Capabilities() []Capability {
	out := make([]Capability, len(capabilities))
	copy(out, capabilities)
	return out
}

func NewCapability(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range capabilities {
		if c == known {
			return c, nil
		}
	}
	return "", errs.Mark(errs.Newf("unknown capability %q", s), ErrInvalidCapability)
}

func (c Capability) String() string {
	return string(c)
}

type Protocol string

const (
	ProtocolREST   Protocol = "REST"
	ProtocolLegacy Protocol = "LEGACY"
)

func NewProtocol(s string) (Protocol, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REST":
		return ProtocolREST, nil
	case "LEGACY", "SOAP":
		return ProtocolLegacy, nil
	default:
		return "", errs.Mark(errs.Newf("unknown protocol %q", s), ErrInvalidProtocol)
	}
}

func (p Protocol) String() string {
	return string(p)
}

// Other returns the competing protocol
func (p Protocol) Other() Protocol {
	if p == ProtocolREST {
		return ProtocolLegacy
	}
	return ProtocolREST
}

type Operation string

const (
	OpSearch            Operation = "search"
	OpCheckAvailability Operation = "check_availability"
	OpCreateHold        Operation = "create_hold"
	OpCreateReservation Operation = "create_reservation"
	OpGenerateInvoice   Operation = "generate_invoice"
	OpCancelReservation Operation = "cancel_reservation"
	OpRegisterCustomer  Operation = "register_customer"
)

var operations = []Operation{
	OpSearch,
	OpCheckAvailability,
	OpCreateHold,
	OpCreateReservation,
	OpGenerateInvoice,
	OpCancelReservation,
	OpRegisterCustomer,
}

func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

func NewOperation(s string) (Operation, error) {
	op := Operation(s)
	for _, known := range operations {
		if op == known {
			return op, nil
		}
	}
	return "", errs.Mark(errs.Newf("unknown operation %q", s), ErrInvalidOperation)
}

func (o Operation) String() string {
	return string(o)
}
