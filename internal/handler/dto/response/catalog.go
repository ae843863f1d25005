package response

import (
	"time"

	"booking-orchestrator/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Capability  string    `json:"capability"`
	Name        string    `json:"name"`
	Protocols   []string  `json:"protocols"`
	Searchable  bool      `json:"searchable"`
	Cancellable bool      `json:"cancellable"`
}

type ProductResponse struct {
	ServiceID   uuid.UUID         `json:"serviceId"`
	ServiceName string            `json:"serviceName"`
	Capability  string            `json:"capability"`
	ProductID   string            `json:"productId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Location    string            `json:"location,omitempty"`
	StartsAt    *time.Time        `json:"startsAt,omitempty"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	Currency    string            `json:"currency"`
	Available   int               `json:"available"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type SearchMetaResponse struct {
	ProvidersQueried   int      `json:"providersQueried"`
	ProvidersSucceeded int      `json:"providersSucceeded"`
	ProvidersFailed    int      `json:"providersFailed"`
	FailedProviders    []string `json:"failedProviders"`
	CacheHit           bool     `json:"cacheHit"`
}

type SearchResponse struct {
	Capability string             `json:"capability"`
	Products   []ProductResponse  `json:"products"`
	Meta       SearchMetaResponse `json:"meta"`
}

func FromServiceViews(views []*queries.ServiceView) ([]ServiceResponse, error) {
	out := make([]ServiceResponse, 0, len(views))
	if err := copier.Copy(&out, views); err != nil {
		return nil, err
	}
	return out, nil
}

func FromSearchResult(r *queries.SearchResult) (*SearchResponse, error) {
	var out SearchResponse
	if err := copier.Copy(&out, r); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []ProductResponse{}
	}
	if out.Meta.FailedProviders == nil {
		out.Meta.FailedProviders = []string{}
	}
	return &out, nil
}
