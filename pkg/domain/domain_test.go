package domain_test

import (
	"testing"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/domain"
	"gotest.tools/v3/assert"
)

func TestExtractRootDomain(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sub.example.com", "example.com"},
		{"example.com", "example.com"},
		{"localhost", "localhost"},
		{"a.b.c.example.org", "example.org"},
		{"foo.example.co.uk", "co.uk"},
		{"example.com.", "com."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExtractRootDomain(tt.name))
		})
	}
}
