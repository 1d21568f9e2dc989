package ipprovider

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
)

const (
	icanHaz        = "icanhazip"
	icanHazBaseUrl = "https://ipv4.icanhazip.com"
)

type ICanHazIp struct {
	BaseUrl string
	Client  *http.Client
}

func (i *ICanHazIp) GetProviderName() string {
	return icanHaz
}

func (i *ICanHazIp) GetCurrentIP(ctx context.Context) (netip.Addr, error) {
	url := i.BaseUrl
	if url == "" {
		url = icanHazBaseUrl
	}
	body, err := fetch(ctx, i.Client, url)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%s: %w", icanHaz, err)
	}
	return parseIPv4(string(body))
}
