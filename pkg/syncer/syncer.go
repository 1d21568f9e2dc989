package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/larivierec/cloudflare-ddns-sync/pkg/cloudprovider"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/console"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/domain"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/ipprovider"
	"github.com/larivierec/cloudflare-ddns-sync/pkg/metrics"
)

// Syncer keeps a single A record pointed at the host's public IPv4 address.
//
// A Syncer is owned by one goroutine: Init once, then Run. The zone and
// record IDs resolved by Init are never refreshed, so a record deleted or
// moved on the provider side keeps failing until the process restarts.
type Syncer struct {
	cloud    cloudprovider.Provider
	ips      ipprovider.Provider
	logger   *console.Logger
	dnsName  string
	interval time.Duration

	zoneID   string
	recordID string
	// lastIP is the last address the provider acknowledged.
	lastIP string
}

func New(cloud cloudprovider.Provider, ips ipprovider.Provider, dnsName string, interval time.Duration, logger *console.Logger) *Syncer {
	if logger == nil {
		logger = console.Default()
	}
	return &Syncer{
		cloud:    cloud,
		ips:      ips,
		logger:   logger,
		dnsName:  dnsName,
		interval: interval,
	}
}

// Init resolves the zone and record IDs. Any error is meant to stop the
// process; there is no retry.
func (s *Syncer) Init(ctx context.Context) error {
	s.logger.Infof("Fetching Zone ID for: %s", s.dnsName)
	zoneID, err := s.cloud.LookupZone(ctx, domain.ExtractRootDomain(s.dnsName))
	if err != nil {
		return fmt.Errorf("unable to resolve zone for %s: %w", s.dnsName, err)
	}
	s.zoneID = zoneID
	s.logger.Infof("Zone ID: %s", zoneID)

	s.logger.Infof("Fetching Record ID for: %s", s.dnsName)
	recordID, err := s.cloud.LookupRecord(ctx, zoneID, s.dnsName)
	if err != nil {
		return fmt.Errorf("unable to resolve record %s: %w", s.dnsName, err)
	}
	s.recordID = recordID
	s.logger.Infof("Record ID: %s", recordID)
	return nil
}

// Run calls RunOnce every interval until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	s.logger.Infof("Starting IP sync loop...")
	for {
		s.RunOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// RunOnce checks the public address once and updates the record if it moved.
// Failures are logged; a failed update leaves the cached address untouched so
// the next call tries again.
func (s *Syncer) RunOnce(ctx context.Context) {
	addr, err := ipprovider.GetCurrentIP(ctx, s.ips, metrics.IncrementProvider)
	if err != nil {
		s.logger.Errorf("%v", err)
		return
	}
	if !addr.IsValid() {
		s.logger.Errorf("Could not determine public IP")
		return
	}

	ip := addr.String()
	if ip == s.lastIP {
		return
	}

	s.logger.Infof("New IP: %s", ip)
	ack, err := s.cloud.UpdateRecord(ctx, s.zoneID, s.recordID, s.dnsName, ip)
	switch {
	case err != nil:
		metrics.ObserveUpdate(metrics.UpdateError)
		s.logger.Errorf("%v", err)
	case !ack.Success:
		metrics.ObserveUpdate(metrics.UpdateRejected)
		if len(ack.Messages) == 0 {
			s.logger.Errorf("Failed to update DNS")
		} else {
			s.logger.Errorf("Failed to update DNS: %s", strings.Join(ack.Messages, "; "))
		}
	default:
		metrics.ObserveUpdate(metrics.UpdateSuccess)
		s.logger.OKf("DNS updated: %s", ip)
		s.lastIP = ip
	}
}

func (s *Syncer) LastIP() string {
	return s.lastIP
}

func (s *Syncer) ZoneID() string {
	return s.zoneID
}

func (s *Syncer) RecordID() string {
	return s.recordID
}
