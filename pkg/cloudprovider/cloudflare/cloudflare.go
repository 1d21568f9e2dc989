package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/metrics"
)

const DefaultAPIUrl = "https://api.cloudflare.com/client/v4"

type CloudflareProvider struct {
	config Configuration
	client *http.Client
}

type Configuration struct {
	Token  string
	APIUrl string
	// HTTPClient defaults to a pooled go-cleanhttp client.
	HTTPClient *http.Client
}

// response is the envelope every Cloudflare v4 endpoint answers with.
type response struct {
	Success *bool           `json:"success"`
	Errors  []apiError      `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type identified struct {
	ID string `json:"id"`
}

func NewCloudflareProvider(config Configuration) *CloudflareProvider {
	if config.APIUrl == "" {
		config.APIUrl = DefaultAPIUrl
	}
	config.APIUrl = strings.TrimSuffix(config.APIUrl, "/")

	client := config.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &CloudflareProvider{config: config, client: client}
}

func (c *CloudflareProvider) LookupZone(ctx context.Context, domain string) (string, error) {
	var zones []identified
	resp, err := c.do(ctx, http.MethodGet, "/zones", url.Values{"name": {domain}}, nil, &zones)
	if err != nil {
		return "", fmt.Errorf("[LookupZone] %w", err)
	}
	if !resp.succeeded() || len(zones) == 0 {
		return "", fmt.Errorf("[LookupZone] zone for domain %s: %w%s", domain, cloudprovider.ErrNotFound, resp.messages())
	}
	return zones[0].ID, nil
}

func (c *CloudflareProvider) LookupRecord(ctx context.Context, zoneID, name string) (string, error) {
	path := fmt.Sprintf("/zones/%s/dns_records", url.PathEscape(zoneID))
	query := url.Values{"type": {cloudprovider.RecordTypeA}, "name": {name}}

	var records []identified
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, &records)
	if err != nil {
		return "", fmt.Errorf("[LookupRecord] %w", err)
	}
	if !resp.succeeded() || len(records) == 0 {
		return "", fmt.Errorf("[LookupRecord] DNS record %s: %w%s", name, cloudprovider.ErrNotFound, resp.messages())
	}
	return records[0].ID, nil
}

// UpdateRecord replaces the content of an existing A record. A response with
// success=false is returned as an unsuccessful Ack with a nil error.
func (c *CloudflareProvider) UpdateRecord(ctx context.Context, zoneID, recordID, name, content string) (cloudprovider.Ack, error) {
	path := fmt.Sprintf("/zones/%s/dns_records/%s", url.PathEscape(zoneID), url.PathEscape(recordID))

	resp, err := c.do(ctx, http.MethodPut, path, nil, cloudprovider.NewARecord(name, content), nil)
	if err != nil {
		return cloudprovider.Ack{}, fmt.Errorf("[UpdateRecord] %w", err)
	}
	return cloudprovider.Ack{Success: resp.succeeded(), Messages: resp.errorMessages()}, nil
}

// do sends one authenticated request and decodes the response envelope.
// When out is non-nil and the call succeeded, the envelope's result is
// decoded into it. The HTTP status is not inspected; the envelope's success
// flag carries the outcome.
func (c *CloudflareProvider) do(ctx context.Context, method, path string, query url.Values, body any, out any) (*response, error) {
	endpoint := c.config.APIUrl + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	metrics.IncrementCloudflare(method)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", cloudprovider.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %w", cloudprovider.ErrTransport, method, path, err)
	}

	result := &response{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("%w: %s %s returned %s: %v", cloudprovider.ErrProtocol, method, path, resp.Status, err)
	}
	if result.Success == nil {
		return nil, fmt.Errorf("%w: %s %s returned %s without a success flag", cloudprovider.ErrProtocol, method, path, resp.Status)
	}

	if out != nil && *result.Success && len(result.Result) > 0 {
		if err := json.Unmarshal(result.Result, out); err != nil {
			return nil, fmt.Errorf("%w: decoding result of %s %s: %v", cloudprovider.ErrProtocol, method, path, err)
		}
	}
	return result, nil
}

func (c *CloudflareProvider) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Content-Type", "application/json")
}

func (r *response) succeeded() bool {
	return r.Success != nil && *r.Success
}

func (r *response) errorMessages() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, fmt.Sprintf("%d: %s", e.Code, e.Message))
	}
	return msgs
}

// messages formats the provider's error list as a suffix for error strings.
func (r *response) messages() string {
	msgs := r.errorMessages()
	if len(msgs) == 0 {
		return ""
	}
	return " (" + strings.Join(msgs, "; ") + ")"
}
