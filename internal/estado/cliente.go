package estado

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/infra"
	"github.com/landaetal/despensaapp/internal/model"
)

// RankingProducto is one row of the server-side product ranking, sorted
// descending by Cantidad.
type RankingProducto struct {
	EAN        string          `json:"ean"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// RankingResponse is the pre-aggregated answer of the ranking endpoint.
type RankingResponse struct {
	TotalVentas decimal.Decimal   `json:"totalVentas"`
	Productos   []RankingProducto `json:"productos"`
}

// Cliente talks to the remote state endpoint. Implementations must honour
// context cancellation: an abandoned session cancels its in-flight calls.
type Cliente interface {
	// CargarDocumento fetches the user's whole document. A user the
	// endpoint has never seen yields an empty document, not an error.
	CargarDocumento(ctx context.Context, email string) (*model.Documento, error)
	// GuardarDocumento replaces the user's document completely. There are
	// no partial/merge semantics server-side.
	GuardarDocumento(ctx context.Context, email string, doc *model.Documento) error
	// RankingVentas queries the pre-aggregated product ranking for an
	// optional date range.
	RankingVentas(ctx context.Context, email string, desde, hasta *model.Fecha) (*RankingResponse, error)
}

// ClienteHTTP implements Cliente over the documented HTTP surface, wrapped
// in a circuit breaker so a flapping endpoint fast-fails instead of hanging
// every session.
type ClienteHTTP struct {
	baseURL    string
	httpClient *http.Client
	cb         *infra.CircuitBreaker
}

func NewClienteHTTP(baseURL string) *ClienteHTTP {
	return &ClienteHTTP{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cb:         infra.NewCircuitBreaker(infra.DefaultCBConfig()),
	}
}

func (c *ClienteHTTP) CargarDocumento(ctx context.Context, email string) (*model.Documento, error) {
	var doc *model.Documento
	err := c.cb.Execute(func() error {
		u := fmt.Sprintf("%s/estado?email=%s", c.baseURL, url.QueryEscape(email))
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("estado: create request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("estado: endpoint unreachable: %w", err)
		}
		defer resp.Body.Close()

		// An unknown user is an explicitly-empty document, not a failure.
		if resp.StatusCode == http.StatusNotFound {
			doc = model.NuevoDocumento()
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("estado: endpoint returned %d", resp.StatusCode)
		}

		var d model.Documento
		if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
			return fmt.Errorf("estado: decode document: %w", err)
		}
		d.Normalizar()
		doc = &d
		return nil
	})
	return doc, err
}

func (c *ClienteHTTP) GuardarDocumento(ctx context.Context, email string, d *model.Documento) error {
	return c.cb.Execute(func() error {
		body, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("estado: marshal document: %w", err)
		}
		u := fmt.Sprintf("%s/estado?email=%s", c.baseURL, url.QueryEscape(email))
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("estado: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("estado: endpoint unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
			return fmt.Errorf("estado: endpoint returned %d", resp.StatusCode)
		}
		return nil
	})
}

func (c *ClienteHTTP) RankingVentas(ctx context.Context, email string, desde, hasta *model.Fecha) (*RankingResponse, error) {
	q := url.Values{"email": {email}}
	if desde != nil {
		q.Set("desde", desde.String())
	}
	if hasta != nil {
		q.Set("hasta", hasta.String())
	}

	var ranking *RankingResponse
	err := c.cb.Execute(func() error {
		u := fmt.Sprintf("%s/ranking-ventas?%s", c.baseURL, q.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("ranking: create request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("ranking: endpoint unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("ranking: endpoint returned %d", resp.StatusCode)
		}
		var r RankingResponse
		if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
			return fmt.Errorf("ranking: decode response: %w", err)
		}
		ranking = &r
		return nil
	})
	return ranking, err
}
