package ipprovider

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/netip"
	"strings"
)

type IncrementFunc func(provider string)

func GetProviderName(provider Provider) string {
	return provider.GetProviderName()
}

// selector is implemented by providers that delegate each query to another
// provider, so the one actually asked is the one counted.
type selector interface {
	Select() (Provider, error)
}

func GetCurrentIP(ctx context.Context, provider Provider, incrementFunc IncrementFunc) (netip.Addr, error) {
	if s, ok := provider.(selector); ok {
		picked, err := s.Select()
		if err != nil {
			return netip.Addr{}, err
		}
		provider = picked
	}
	if incrementFunc != nil {
		incrementFunc(provider.GetProviderName())
	}
	return provider.GetCurrentIP(ctx)
}

// NewProvider returns the provider registered under name. Unknown names fall
// back to "random".
func NewProvider(name string, client *http.Client) Provider {
	switch name {
	case ipify:
		return &Ipify{Client: client}
	case icanHaz, "icanhaz":
		return &ICanHazIp{Client: client}
	default:
		return &Random{Providers: []Provider{&Ipify{Client: client}, &ICanHazIp{Client: client}}}
	}
}

// Random asks one of its providers, picked at random on every call.
type Random struct {
	Providers []Provider
}

func (r *Random) GetProviderName() string {
	return "random"
}

func (r *Random) Select() (Provider, error) {
	if len(r.Providers) == 0 {
		return nil, fmt.Errorf("no ip providers configured")
	}
	return r.Providers[rand.Intn(len(r.Providers))], nil
}

func (r *Random) GetCurrentIP(ctx context.Context) (netip.Addr, error) {
	provider, err := r.Select()
	if err != nil {
		return netip.Addr{}, err
	}
	return provider.GetCurrentIP(ctx)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	response, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", url, response.Status)
	}
	return io.ReadAll(response.Body)
}

// parseIPv4 returns an invalid Addr for empty input and for anything that is
// not an IPv4 address.
func parseIPv4(s string) (netip.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("parsing ip %q: %w", s, err)
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, nil
	}
	return addr, nil
}
