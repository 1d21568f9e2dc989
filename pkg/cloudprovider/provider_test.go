package cloudprovider_test

import (
	"encoding/json"
	"testing"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider/cloudflare"
	"gotest.tools/v3/assert"
)

func TestProvider_ImplementedByCloudflare(t *testing.T) {
	var _ cloudprovider.Provider = cloudflare.NewCloudflareProvider(cloudflare.Configuration{Token: "t"})
}

func TestNewARecord(t *testing.T) {
	record := cloudprovider.NewARecord("foo.example.com", "1.2.3.4")

	assert.Equal(t, "A", record.Type)
	assert.Equal(t, "foo.example.com", record.Name)
	assert.Equal(t, "1.2.3.4", record.Content)
	assert.Equal(t, 1, record.TTL)
	assert.Equal(t, false, record.Proxied)
}

func TestRecord_WireFormat(t *testing.T) {
	data, err := json.Marshal(cloudprovider.NewARecord("foo.example.com", "1.2.3.4"))
	assert.NilError(t, err)
	assert.Equal(t, `{"type":"A","name":"foo.example.com","content":"1.2.3.4","ttl":1,"proxied":false}`, string(data))
}
