package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog.GO/config"
	"catalog.GO/core/cache"
	"catalog.GO/model/entity"
)

// maxResponseSize limits response bodies to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024

// listCacheKey is the cache key for the raw list payload.
const listCacheKey = "catalog:products:list"

// RemoteError is the uniform error for transport failures and non-2xx
// responses from the remote catalog service. Nothing is retried.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote catalog: %s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("remote catalog: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Client talks to the remote catalog service. Single attempt per call; the
// list payload is optionally cached (Redis when configured, in-memory
// otherwise) and invalidated by writes.
type Client struct {
	base     string
	http     *http.Client
	cacheTTL int64
	mem      *cache.Cache
}

// NewClient creates a client for the configured remote endpoint.
func NewClient(cfg config.RemoteConfig) *Client {
	return &Client{
		base:     cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		cacheTTL: cfg.CacheTTL,
		mem:      cache.GetInstance(),
	}
}

// List fetches all products as raw records (normalization happens in the
// store, which owns the ingestion invariants).
func (c *Client) List(ctx context.Context) ([]map[string]interface{}, error) {
	if body, ok := c.cachedList(); ok {
		var records []map[string]interface{}
		if err := json.Unmarshal(body, &records); err == nil {
			return records, nil
		}
		c.invalidateList()
	}

	body, err := c.do(ctx, http.MethodGet, c.base+"/products", nil, "list products")
	if err != nil {
		return nil, err
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &RemoteError{Op: "list products", Err: err}
	}
	c.storeList(body)
	return records, nil
}

// Create posts a new product and returns the server-assigned record.
func (c *Client) Create(ctx context.Context, payload entity.Payload) (map[string]interface{}, error) {
	body, err := c.doJSON(ctx, http.MethodPost, c.base+"/products", payload, "create product")
	if err != nil {
		return nil, err
	}
	c.invalidateList()
	return body, nil
}

// Update puts the payload for an existing product and returns the updated
// record.
func (c *Client) Update(ctx context.Context, id int, payload entity.Payload) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/products/%d", c.base, id)
	body, err := c.doJSON(ctx, http.MethodPut, url, payload, "update product")
	if err != nil {
		return nil, err
	}
	c.invalidateList()
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, payload entity.Payload, op string) (map[string]interface{}, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	body, err := c.do(ctx, method, url, bytes.NewReader(encoded), op)
	if err != nil {
		return nil, err
	}
	var record map[string]interface{}
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	return record, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &RemoteError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteError{Op: op, Status: resp.StatusCode}
	}
	return data, nil
}

// --- list payload cache (Redis when configured, in-memory otherwise) ---

func (c *Client) cachedList() ([]byte, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	if config.RedisClient != nil {
		body, err := config.RedisClient.Get(config.RedisCtx(), listCacheKey).Bytes()
		if err != nil {
			return nil, false
		}
		return body, true
	}
	v, ok := c.mem.Get(listCacheKey)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (c *Client) storeList(body []byte) {
	if c.cacheTTL <= 0 {
		return
	}
	if config.RedisClient != nil {
		config.RedisClient.Set(config.RedisCtx(), listCacheKey, body, time.Duration(c.cacheTTL)*time.Second)
		return
	}
	c.mem.Set(listCacheKey, body, c.cacheTTL, []string{"catalog"})
}

func (c *Client) invalidateList() {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), listCacheKey)
	}
	c.mem.Delete(listCacheKey)
}
