// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alvinbaena/pwd-meter/internal/api"
	"github.com/alvinbaena/pwd-meter/internal/config"
	"github.com/alvinbaena/pwd-meter/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password strength page and JSON API over TLS",
		Long: "Serve a local password strength page and JSON API. Every flag can also be set with a " +
			config.EnvPrefix + "_ prefixed environment variable or in a .env file, e.g. " + config.EnvPrefix + "_SELF_TLS=true",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand(cmd)
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Address to bind the server to")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	serveCmd.Flags().Float64Var(&rateLimit, "rate-limit", 10, "Analysis requests per second for all callers. 0 disables the limit")
	serveCmd.Flags().IntVar(&rateBurst, "rate-burst", 20, "Analysis requests allowed in a burst")
	serveCmd.Flags().IntVar(&maxConns, "max-conns", 64, "Maximum simultaneous connections. 0 disables the limit")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	util.ApplyCliSettings(cfg.Debug, profile, pprofPort)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	analyzer, err := newAnalyzer(cfg.PolicyFile, cfg.Attacker, nil)
	if err != nil {
		return err
	}

	tlsConfig, err := serverTLSConfig(cfg)
	if err != nil {
		return err
	}

	router := api.NewRouter(analyzer, api.Options{RateLimit: cfg.RateLimit, RateBurst: cfg.RateBurst})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	if cfg.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConns)
	}

	if ip := net.ParseIP(cfg.Host); ip == nil || !ip.IsLoopback() {
		log.Warn().Msgf("server is reachable from other hosts on %s. Passwords will travel the network", cfg.Host)
	}

	go func() {
		log.Info().Msgf("starting TLS Server on address: %s", srv.Addr)
		// certificates are already in the TLS config, no need to pass files
		if err := srv.ServeTLS(listener, "", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

func serverTLSConfig(cfg config.Config) (*tls.Config, error) {
	if cfg.TLSCert != "" && cfg.TLSKey != "" {
		pair, err := tls.LoadX509KeyPair(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("error loading TLS certificate: %w", err)
		}

		return &tls.Config{Certificates: []tls.Certificate{pair}, MinVersion: tls.VersionTLS12}, nil
	}

	if !cfg.SelfTLS {
		return nil, errors.New("server requires TLS configuration to start. " +
			"Please use either the --self-tls flag or set a certificate with the --tls-cert and --tls-key flags")
	}

	log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
		Hosts:    []string{cfg.Host, "localhost"},
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{Certificates: []tls.Certificate{pair}, MinVersion: tls.VersionTLS12}, nil
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server Shutdown.")
	}
	log.Info().Msg("server exiting...")
}
