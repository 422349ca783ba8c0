package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/config"
	"outfit-agent-demo/internal/dto"
)

type CatalogClient interface {
	// Search runs a fresh top-N product search. No pagination cursor.
	Search(ctx context.Context, query string, limit int) ([]dto.ProductSummary, error)
}

type catalogClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

func NewCatalogClient(catalogCfg *config.Catalog) (CatalogClient, error) {
	if catalogCfg.BaseApiURL == "" {
		return nil, apperr.Configurationf("catalog base url is empty")
	}
	return &catalogClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: strings.TrimSuffix(catalogCfg.BaseApiURL, "/"),
	}, nil
}

func (c *catalogClientImpl) Search(ctx context.Context, query string, limit int) ([]dto.ProductSummary, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, "GET",
		c.baseApiURL+"/products/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.ExternalCallf(err, "catalog search")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, apperr.ExternalCallf(
			fmt.Errorf("catalog error %d: %s", resp.StatusCode, string(b)),
			"catalog search",
		)
	}

	var result struct {
		Products []dto.ProductSummary `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperr.ExternalCallf(err, "decode catalog response")
	}

	return result.Products, nil
}
