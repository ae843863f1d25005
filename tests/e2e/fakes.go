//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const PlatformAccount int64 = 1

type Transfer struct {
	From           int64           `json:"fromAccount"`
	To             int64           `json:"toAccount"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
	IdempotencyKey string          `json:"-"`
}

// FakeBank accepts every transfer unless its source account was refused
type FakeBank struct {
	srv *httptest.Server

	mu        sync.Mutex
	transfers []Transfer
	seen      map[string]bool
	refused   map[int64]bool
}

func NewFakeBank() *FakeBank {
	b := &FakeBank{seen: map[string]bool{}, refused: map[int64]bool{}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transfers", b.handleTransfer)
	b.srv = httptest.NewServer(mux)
	return b
}

func (b *FakeBank) URL() string { return b.srv.URL }

func (b *FakeBank) Close() { b.srv.Close() }

func (b *FakeBank) Refuse(from int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refused[from] = true
}

func (b *FakeBank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transfers = nil
	b.seen = map[string]bool{}
	b.refused = map[int64]bool{}
}

// Transfers returns the accepted transfers in arrival order, replays excluded
func (b *FakeBank) Transfers() []Transfer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Transfer(nil), b.transfers...)
}

func (b *FakeBank) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var t Transfer
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t.IdempotencyKey = r.Header.Get("Idempotency-Key")

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refused[t.From] {
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	if t.IdempotencyKey == "" || !b.seen[t.IdempotencyKey] {
		b.seen[t.IdempotencyKey] = true
		b.transfers = append(b.transfers, t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type Room struct {
	RoomID        string          `json:"roomId"`
	HotelName     string          `json:"hotelName"`
	City          string          `json:"city"`
	RoomType      string          `json:"roomType"`
	Capacity      int             `json:"capacity"`
	Stars         int             `json:"stars"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Currency      string          `json:"currency"`
}

// FakeHotelProvider serves the REST operations of a hotel provider from memory
type FakeHotelProvider struct {
	srv   *httptest.Server
	rooms []Room

	mu            sync.Mutex
	failBooking   bool
	bookings      int
	cancellations []string
	calls         map[string]int
}

func NewFakeHotelProvider(rooms ...Room) *FakeHotelProvider {
	p := &FakeHotelProvider{rooms: rooms, calls: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", p.count("search", p.search))
	mux.HandleFunc("GET /check_availability", p.count("check_availability", p.availability))
	mux.HandleFunc("POST /create_hold", p.count("create_hold", p.hold))
	mux.HandleFunc("POST /create_reservation", p.count("create_reservation", p.book))
	mux.HandleFunc("POST /generate_invoice", p.count("generate_invoice", p.invoice))
	mux.HandleFunc("POST /cancel_reservation", p.count("cancel_reservation", p.cancel))
	mux.HandleFunc("POST /register_customer", p.count("register_customer", p.register))
	p.srv = httptest.NewServer(mux)
	return p
}

func (p *FakeHotelProvider) URL() string { return p.srv.URL }

func (p *FakeHotelProvider) Close() { p.srv.Close() }

func (p *FakeHotelProvider) FailBookings() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failBooking = true
}

func (p *FakeHotelProvider) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

func (p *FakeHotelProvider) Cancellations() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.cancellations...)
}

func (p *FakeHotelProvider) count(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls[op]++
		p.mu.Unlock()
		next(w, r)
	}
}

func (p *FakeHotelProvider) search(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	items := make([]Room, 0, len(p.rooms))
	for _, room := range p.rooms {
		if city == "" || room.City == city {
			items = append(items, room)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (p *FakeHotelProvider) availability(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("roomId")
	available := false
	for _, room := range p.rooms {
		if room.RoomID == id {
			available = true
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"available": available})
}

func (p *FakeHotelProvider) hold(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID      string `json:"roomId"`
		HoldSeconds int    `json:"holdSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	seconds := body.HoldSeconds
	if seconds <= 0 {
		seconds = 300
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"holdId":    "hold-" + body.RoomID,
		"expiresAt": time.Now().UTC().Add(time.Duration(seconds) * time.Second).Format(time.RFC3339),
	})
}

func (p *FakeHotelProvider) book(w http.ResponseWriter, _ *http.Request) {
	p.mu.Lock()
	fail := p.failBooking
	p.bookings++
	n := p.bookings
	p.mu.Unlock()

	if fail {
		http.Error(w, "room no longer available", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"confirmationCode": "CONF-" + strconv.Itoa(n),
		"reservationId":    "prov-res-" + strconv.Itoa(n),
	})
}

func (p *FakeHotelProvider) invoice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReservationID string `json:"reservationId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	writeJSON(w, http.StatusOK, map[string]any{"invoiceUrl": "https://invoices.example/" + body.ReservationID})
}

func (p *FakeHotelProvider) cancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ConfirmationCode string `json:"confirmationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p.mu.Lock()
	p.cancellations = append(p.cancellations, body.ConfirmationCode)
	p.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"cancelled": true})
}

func (p *FakeHotelProvider) register(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"customerId": "ext-1"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
