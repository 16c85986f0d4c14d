package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// ProductsQuery — GROQ-запрос всех товаров с проекцией полей карточки.
const ProductsQuery = `*[_type == "product"]{
  _id,
  title,
  price,
  description,
  discountPercentage,
  "imageUrl": productImage.asset->url,
  tags
}`

const maxResponseSize = 16 << 20

// Client — адаптер контент-хранилища Sanity поверх HTTP Query API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     logger.Logger
}

func NewClient(cfg *cfg.SanityCfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   QueryEndpoint(cfg),
		token:      cfg.Token,
		logger:     logger,
	}
}

// NewClientWithEndpoint создаёт клиент с явным адресом Query API.
func NewClientWithEndpoint(httpClient *http.Client, endpoint, token string, logger logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
		logger:     logger,
	}
}

// QueryEndpoint возвращает адрес Query API для проекта и датасета.
func QueryEndpoint(cfg *cfg.SanityCfg) string {
	host := "api.sanity.io"
	if cfg.UseCDN {
		host = "apicdn.sanity.io"
	}

	return fmt.Sprintf("https://%s.%s/v%s/data/query/%s", cfg.ProjectID, host, cfg.APIVersion, url.PathEscape(cfg.Dataset))
}

// FetchAllProducts выполняет единственный запрос без параметров и возвращает товары в порядке ответа.
func (c *Client) FetchAllProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "sanity.Client.FetchAllProducts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+url.Values{"query": {ProductsQuery}}.Encode(), nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, e.Wrap(op, fmt.Errorf("%w: %d: %s", e.ErrUnexpectedCode, resp.StatusCode, errorMessage(body)))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, e.Wrap(op, fmt.Errorf("decode query response: %w", err))
	}

	c.logger.Debugf("%s: fetched %d products in %dms", op, len(qr.Result), qr.MS)
	c.logger.Debugf("%s: round trip %v", op, time.Since(start))

	return toDomainProducts(qr.Result), nil
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Description != "" {
		return er.Error.Description
	}

	const maxLen = 200
	if len(body) > maxLen {
		body = body[:maxLen]
	}
	return string(body)
}
