package ipprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
)

const (
	ipify        = "ipify"
	ipifyBaseUrl = "https://api.ipify.org?format=json"
)

type Ipify struct {
	BaseUrl string
	Client  *http.Client
}

type IpInfo struct {
	Ip string `json:"ip"`
}

func (i *Ipify) GetProviderName() string {
	return ipify
}

func (i *Ipify) GetCurrentIP(ctx context.Context) (netip.Addr, error) {
	url := i.BaseUrl
	if url == "" {
		url = ipifyBaseUrl
	}
	body, err := fetch(ctx, i.Client, url)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%s: %w", ipify, err)
	}

	ipInfo := IpInfo{}
	if err := json.Unmarshal(body, &ipInfo); err != nil {
		return netip.Addr{}, fmt.Errorf("%s: decoding response: %w", ipify, err)
	}
	return parseIPv4(ipInfo.Ip)
}
