package provider

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"booking-orchestrator/internal/domain/catalog"
	"booking-orchestrator/internal/pkg/errs"
	"booking-orchestrator/internal/usecase/shared"
)

const (
	envelopeNS       = "http://schemas.xmlsoap.org/soap/envelope/"
	faultUnsupported = "NotImplemented"
)

// LegacyTransport speaks the XML envelope dialect. Every operation is a POST to the
// operation endpoint with the request element named after the action.
type LegacyTransport struct {
	client *http.Client
}

func NewLegacyTransport(client *http.Client) *LegacyTransport {
	return &LegacyTransport{client: client}
}

func (t *LegacyTransport) Protocol() catalog.Protocol {
	return catalog.ProtocolLegacy
}

type fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

type responseContent struct {
	XMLName xml.Name
	Inner   []byte `xml:",innerxml"`
}

type responseBody struct {
	Fault   *fault          `xml:"Fault"`
	Content responseContent `xml:",any"`
}

type responseEnvelope struct {
	Body responseBody `xml:"Body"`
}

func (t *LegacyTransport) Do(ctx context.Context, detail catalog.ProtocolDetail, req Request, out any) error {
	action := actionName(req.Operation)
	payload, err := encodeEnvelope(action, req.Body)
	if err != nil {
		return err
	}

	uri := detail.BuildURI(req.Operation)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(payload))
	if err != nil {
		return unavailable(err, "build %s request", action)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", action)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return unavailable(err, "POST %s", uri)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return unavailable(err, "read %s response", action)
	}
	if len(raw) > maxResponseBody {
		return unavailable(errs.Newf("response larger than %d bytes", maxResponseBody), "read %s response", action)
	}

	var env responseEnvelope
	decodeErr := xml.Unmarshal(raw, &env)
	if decodeErr == nil && env.Body.Fault != nil {
		return faultError(env.Body.Fault)
	}
	if resp.StatusCode >= 300 {
		msg := string(raw)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return classifyStatus(resp.StatusCode, strings.TrimSpace(msg))
	}
	if decodeErr != nil {
		return unavailable(decodeErr, "decode %s envelope", action)
	}

	if out == nil {
		return nil
	}
	// re-root the inner content so the result struct can ignore the response element name
	inner := append(append([]byte("<r>"), env.Body.Content.Inner...), "</r>"...)
	if err := xml.Unmarshal(inner, out); err != nil {
		return unavailable(err, "decode %s response", action)
	}
	return nil
}

func encodeEnvelope(action string, body any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)

	envStart := xml.StartElement{
		Name: xml.Name{Local: "soap:Envelope"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:soap"}, Value: envelopeNS}},
	}
	bodyStart := xml.StartElement{Name: xml.Name{Local: "soap:Body"}}
	actionStart := xml.StartElement{Name: xml.Name{Local: action}}

	if err := enc.EncodeToken(envStart); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(bodyStart); err != nil {
		return nil, err
	}
	if body != nil {
		if err := enc.EncodeElement(body, actionStart); err != nil {
			return nil, errs.Wrapf(err, "encode %s", action)
		}
	} else {
		if err := enc.EncodeToken(actionStart); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(actionStart.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(bodyStart.End()); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(envStart.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func faultError(f *fault) error {
	code := strings.TrimSpace(f.Code)
	if i := strings.LastIndex(code, ":"); i >= 0 {
		code = code[i+1:]
	}
	if strings.EqualFold(code, faultUnsupported) {
		return errs.Mark(errs.Newf("legacy fault %s: %s", f.Code, f.String), shared.ErrProtocolNotSupported)
	}
	return errs.Mark(errs.Newf("legacy fault %s: %s", f.Code, f.String), shared.ErrProviderRejected)
}

// actionName maps check_availability to CheckAvailability
func actionName(op catalog.Operation) string {
	parts := strings.Split(string(op), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
