package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Client resolves postal codes against viacep.com.br.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type response struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup accepts "01001000" or "01001-000". Unknown codes map to
// ErrAddressNotFound; malformed codes never reach the upstream.
func (c *Client) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	normalized := strings.ReplaceAll(cep, "-", "")
	if !cepPattern.MatchString(normalized) {
		return nil, fmt.Errorf("%w: invalid cep %q", domain.ErrValidation, cep)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep: unexpected status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep: decode: %w", err)
	}
	if body.Erro {
		return nil, domain.ErrAddressNotFound
	}

	return &domain.Address{
		CEP:      body.CEP,
		Street:   body.Logradouro,
		District: body.Bairro,
		City:     body.Localidade,
		State:    body.UF,
	}, nil
}

var _ usecase.CEPLookup = (*Client)(nil)
