// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package audit

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// Source is an open wordlist.
type Source struct {
	io.ReadCloser
	// Name is the file name or URL the list was read from.
	Name string
	// Size is the length of the list in bytes, or -1 when unknown.
	Size int64
}

// Open opens a wordlist from a local file or an http(s) URL.
func Open(ctx context.Context, location string) (*Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return openURL(ctx, initHttpClient(), location)
	}

	file, err := os.Open(location)
	if err != nil {
		return nil, err
	}

	size := int64(-1)
	if stat, err := file.Stat(); err == nil {
		size = stat.Size()
	}

	return &Source{ReadCloser: file, Name: location, Size: size}, nil
}

func initHttpClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	// The default logger writes every attempt to stderr.
	client.Logger = nil
	client.RetryMax = 5

	client.HTTPClient = &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		},
	}

	return client
}

func openURL(ctx context.Context, client *retryablehttp.Client, url string) (*Source, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pwdmeter-audit/1.0")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode >= 400 {
		if err = res.Body.Close(); err != nil {
			log.Warn().Err(err).Msgf("error closing body for %s", url)
		}
		return nil, fmt.Errorf("request [%s] failed with status [%d] %s", url, res.StatusCode, res.Status)
	}

	return &Source{ReadCloser: res.Body, Name: url, Size: res.ContentLength}, nil
}
