package cloudprovider

import (
	"context"
	"errors"
)

const (
	// RecordTypeA is the only record type the agent manages.
	RecordTypeA = "A"
	// TTLAutomatic lets the provider pick the TTL.
	TTLAutomatic = 1
)

var (
	// ErrNotFound is returned when a zone or record lookup yields nothing.
	ErrNotFound = errors.New("not found")
	// ErrTransport wraps network failures talking to the provider.
	ErrTransport = errors.New("transport error")
	// ErrProtocol wraps responses that do not decode as the expected envelope.
	ErrProtocol = errors.New("protocol error")
)

// Record is the body sent when replacing a DNS record.
type Record struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// NewARecord returns an unproxied A record with an automatic TTL.
func NewARecord(name, content string) *Record {
	return &Record{
		Type:    RecordTypeA,
		Name:    name,
		Content: content,
		TTL:     TTLAutomatic,
		Proxied: false,
	}
}

// Ack is the provider's answer to an update. A refused update has Success
// false and whatever reasons the provider gave in Messages.
type Ack struct {
	Success  bool
	Messages []string
}

// Provider is the subset of a DNS provider API the sync loop needs.
//
// UpdateRecord reports a provider-side refusal through Ack with a nil error;
// err is only set for transport and protocol failures.
type Provider interface {
	LookupZone(ctx context.Context, domain string) (string, error)
	LookupRecord(ctx context.Context, zoneID, name string) (string, error)
	UpdateRecord(ctx context.Context, zoneID, recordID, name, content string) (Ack, error)
}
