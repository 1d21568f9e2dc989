package ipprovider_test

import (
	"context"
	"net/http"
	"net/netip"
	"testing"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/ipprovider"
	"gotest.tools/v3/assert"
)

func TestIpify(t *testing.T) {
	provider := &ipprovider.Ipify{BaseUrl: serve(t, http.StatusOK, `{"ip":"198.51.100.23"}`)}

	addr, err := provider.GetCurrentIP(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, netip.MustParseAddr("198.51.100.23"), addr)
	assert.Equal(t, "ipify", ipprovider.GetProviderName(provider))
}

func TestIpify_Undetermined(t *testing.T) {
	provider := &ipprovider.Ipify{BaseUrl: serve(t, http.StatusOK, `{"ip":""}`)}

	addr, err := provider.GetCurrentIP(context.Background())
	assert.NilError(t, err)
	assert.Assert(t, !addr.IsValid())
}

func TestIpify_MalformedBody(t *testing.T) {
	provider := &ipprovider.Ipify{BaseUrl: serve(t, http.StatusOK, `203.0.113.7`)}

	_, err := provider.GetCurrentIP(context.Background())
	assert.ErrorContains(t, err, "decoding response")
}

func TestNewProvider(t *testing.T) {
	tests := map[string]string{
		"ipify":     "ipify",
		"icanhazip": "icanhazip",
		"icanhaz":   "icanhazip",
		"random":    "random",
		"unknown":   "random",
	}
	for name, want := range tests {
		assert.Equal(t, want, ipprovider.NewProvider(name, nil).GetProviderName(), name)
	}
}

func TestRandom(t *testing.T) {
	url := serve(t, http.StatusOK, "192.0.2.1")
	random := &ipprovider.Random{Providers: []ipprovider.Provider{&ipprovider.ICanHazIp{BaseUrl: url}}}

	addr, err := random.GetCurrentIP(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.0.2.1"), addr)

	_, err = (&ipprovider.Random{}).GetCurrentIP(context.Background())
	assert.ErrorContains(t, err, "no ip providers")
}

func TestGetCurrentIP_CountsPickedProvider(t *testing.T) {
	url := serve(t, http.StatusOK, "192.0.2.1")
	random := &ipprovider.Random{Providers: []ipprovider.Provider{&ipprovider.ICanHazIp{BaseUrl: url}}}

	var counted []string
	addr, err := ipprovider.GetCurrentIP(context.Background(), random, func(provider string) {
		counted = append(counted, provider)
	})
	assert.NilError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.0.2.1"), addr)
	assert.DeepEqual(t, []string{"icanhazip"}, counted)

	counted = nil
	_, err = ipprovider.GetCurrentIP(context.Background(), &ipprovider.Random{}, func(provider string) {
		counted = append(counted, provider)
	})
	assert.ErrorContains(t, err, "no ip providers")
	assert.Assert(t, counted == nil)
}
