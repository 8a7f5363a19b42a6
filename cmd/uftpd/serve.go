// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/usef-uftp/shapeshifter-go/config"
	"github.com/usef-uftp/shapeshifter-go/health"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/oauth"
	"github.com/usef-uftp/shapeshifter-go/participant"
)

var (
	configDir   string
	environment string
	roleFlag    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a participant service for the configured role",
	Long: `serve loads a Shapeshifter participant configuration, constructs the
AGR, DSO or CRO facade the role names, and listens for inbound signed
envelopes until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&configDir, "config", "config", "Directory to load <environment>.yaml / default.yaml / config.yaml from")
	serveCmd.Flags().StringVar(&environment, "env", "", "Environment name (defaults to UFTP_ENV/ENVIRONMENT, then \"development\")")
	serveCmd.Flags().StringVar(&roleFlag, "role", "", "Override the configured role (AGR, DSO, CRO)")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := config.LoaderOptions{ConfigDir: configDir, Environment: environment}
	cfg, err := config.Load(opts)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if roleFlag != "" {
		cfg.Role = message.Role(strings.ToUpper(roleFlag))
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := logger.GetDefaultLogger()
	oauthResolve := oauthResolverFromConfig(cfg.OAuth)

	p, handler, err := buildParticipant(cfg, log, oauthResolve)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, handler)

	if cfg.Health.Enabled {
		mux.Handle(cfg.Health.Path, buildHealthHandler(cfg, p))
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsAddr := fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
		metricsSrv = &http.Server{Addr: metricsAddr, Handler: metricsMux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", logger.Error(err))
			}
		}()
		log.Info("metrics server listening", logger.String("addr", metricsAddr), logger.String("path", cfg.Metrics.Path))
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: mux}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("uftpd listening",
			logger.String("role", string(cfg.Role)),
			logger.String("addr", cfg.Addr()),
			logger.String("path", cfg.Path),
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("uftpd shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildParticipant constructs the role facade cfg.Role names and returns
// its embedded Participant alongside its HTTP handler, so the caller
// doesn't need a type switch on the concrete Agr/Dso/Cro type.
func buildParticipant(cfg *config.Config, log logger.Logger, oauthResolve oauth.Resolver) (*participant.Participant, http.Handler, error) {
	switch cfg.Role {
	case message.RoleAGR:
		agr, err := participant.NewAgr(cfg, loggingAgrHandlers(log), oauthResolve)
		if err != nil {
			return nil, nil, err
		}
		return agr.Participant, agr.Handler(), nil
	case message.RoleDSO:
		dso, err := participant.NewDso(cfg, loggingDsoHandlers(log), oauthResolve)
		if err != nil {
			return nil, nil, err
		}
		return dso.Participant, dso.Handler(), nil
	case message.RoleCRO:
		cro, err := participant.NewCro(cfg, loggingCroHandlers(log), oauthResolve)
		if err != nil {
			return nil, nil, err
		}
		return cro.Participant, cro.Handler(), nil
	default:
		return nil, nil, fmt.Errorf("uftpd: unsupported role %q", cfg.Role)
	}
}

// oauthResolverFromConfig maps the participant-wide default OAuth
// configuration onto a Resolver; an empty TokenURL disables bearer-token
// attachment for every peer (oauth.Manager.Configured returns false).
func oauthResolverFromConfig(c config.OAuthConfig) oauth.Resolver {
	return oauth.Static(oauth.Config{
		TokenEndpoint: c.TokenURL,
		ClientID:      c.ClientID,
		ClientSecret:  c.ClientSecret,
		Scope:         c.Scope,
		RefreshBuffer: c.RefreshAhead,
	})
}

// buildHealthHandler wires a discovery reachability check against the
// participant's own sender domain and, when OAuth is configured, a
// token-endpoint reachability check, behind the configured health path.
func buildHealthHandler(cfg *config.Config, p *participant.Participant) http.Handler {
	checker := health.NewHealthChecker(5 * time.Second)
	checker.RegisterCheck("discovery", health.DiscoveryHealthCheck(cfg.SenderDomain, func(ctx context.Context, domain string) error {
		_, err := p.Resolver.Version(ctx, domain)
		return err
	}))
	if mgr := p.OAuth.For(cfg.SenderDomain, cfg.Role); mgr.Configured() {
		checker.RegisterCheck("oauth", health.OAuthHealthCheck(mgr.AuthorizationHeader))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sys := checker.GetSystemHealth(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if sys.Status != health.StatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(sys)
	})
}
