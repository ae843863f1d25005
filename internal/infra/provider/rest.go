package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"booking-orchestrator/internal/domain/catalog"
)

type RESTTransport struct {
	client *http.Client
}

func NewRESTTransport(client *http.Client) *RESTTransport {
	return &RESTTransport{client: client}
}

func (t *RESTTransport) Protocol() catalog.Protocol {
	return catalog.ProtocolREST
}

func (t *RESTTransport) Do(ctx context.Context, detail catalog.ProtocolDetail, req Request, out any) error {
	uri := detail.BuildURI(req.Operation)

	var httpReq *http.Request
	var err error
	if usesQuery(req.Operation) {
		if len(req.Query) > 0 {
			uri += "?" + req.Query.Encode()
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	} else {
		var body []byte
		if req.Body != nil {
			if body, err = json.Marshal(req.Body); err != nil {
				return err
			}
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return unavailable(err, "build %s request", req.Operation)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return unavailable(err, "%s %s", httpReq.Method, uri)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return classifyStatus(resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil && err != io.EOF {
		return unavailable(err, "decode %s response", req.Operation)
	}
	return nil
}

func usesQuery(op catalog.Operation) bool {
	return op == catalog.OpSearch || op == catalog.OpCheckAvailability
}
