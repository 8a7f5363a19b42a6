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

package discovery

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/usef-uftp/shapeshifter-go/envelope"
	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/internal/metrics"
	"github.com/usef-uftp/shapeshifter-go/message"
)

var versionRecordPattern = regexp.MustCompile(`^\d+\.\d+\.\d+`)

// Keys is the result of resolving a participant's published key record: a
// mandatory Ed25519 signing key, and an optional encryption key carried
// alongside it in the same TXT record.
type Keys struct {
	SigningKey    ed25519.PublicKey
	EncryptionKey []byte
}

// Resolver performs DNS-based USEF service discovery, caching every
// result for DefaultTTL and collapsing concurrent identical lookups.
// Grounded on original_source/.../transport.py's get_version/get_endpoint/
// get_keys trio and its @ttl_cache(3600) decorator.
type Resolver struct {
	net      *net.Resolver
	versions *ttlCache
	endpoints *ttlCache
	keys     *ttlCache
	log      logger.Logger
}

// NewResolver builds a Resolver using the system DNS configuration.
func NewResolver() *Resolver {
	return &Resolver{
		net:       net.DefaultResolver,
		versions:  newTTLCache(DefaultTTL),
		endpoints: newTTLCache(DefaultTTL),
		keys:      newTTLCache(DefaultTTL),
		log:       logger.GetDefaultLogger(),
	}
}

// Version resolves the USEF protocol version a domain publishes, from the
// TXT record at _usef.<domain>.
func (r *Resolver) Version(ctx context.Context, domain string) (string, error) {
	v, err := r.versions.getOrResolve(domain, func() (interface{}, error) {
		return r.lookupVersion(ctx, domain)
	})
	if err != nil {
		metrics.DiscoveryCacheLookups.WithLabelValues("version", "error").Inc()
		return "", err
	}
	metrics.DiscoveryCacheLookups.WithLabelValues("version", "ok").Inc()
	return v.(string), nil
}

func (r *Resolver) lookupVersion(ctx context.Context, domain string) (string, error) {
	name := fmt.Sprintf("_usef.%s", domain)
	records, err := r.net.LookupTXT(ctx, name)
	if err != nil {
		return "", nxdomainToServiceDiscovery(name, err)
	}
	if len(records) == 0 {
		return "", errorf("no TXT record found at %s", name)
	}
	version := strings.TrimSpace(records[0])
	if !versionRecordPattern.MatchString(version) {
		return "", errorf("the retrieved version at %s was not in the format X.Y.Z: %q", name, version)
	}
	return version, nil
}

// Endpoint resolves the full HTTPS message endpoint URL for a peer of the
// given role, from the CNAME at _http._<role>._usef.<domain> plus the
// major version component from Version.
func (r *Resolver) Endpoint(ctx context.Context, domain string, role message.Role) (string, error) {
	key := string(role) + "|" + domain
	v, err := r.endpoints.getOrResolve(key, func() (interface{}, error) {
		return r.lookupEndpoint(ctx, domain, role)
	})
	if err != nil {
		metrics.DiscoveryCacheLookups.WithLabelValues("endpoint", "error").Inc()
		return "", err
	}
	metrics.DiscoveryCacheLookups.WithLabelValues("endpoint", "ok").Inc()
	return v.(string), nil
}

func (r *Resolver) lookupEndpoint(ctx context.Context, domain string, role message.Role) (string, error) {
	name := fmt.Sprintf("_http._%s._usef.%s", role, domain)
	target, err := r.net.LookupCNAME(ctx, name)
	if err != nil {
		return "", nxdomainToServiceDiscovery(name, err)
	}

	version, err := r.Version(ctx, domain)
	if err != nil {
		return "", err
	}
	major := version
	if i := strings.IndexByte(version, '.'); i >= 0 {
		major = version[:i]
	}

	host := strings.TrimSuffix(target, ".")
	return fmt.Sprintf("https://%s/shapeshifter/api/v%s/message", host, major), nil
}

// Keys resolves the public signing key (and optional encryption key) a
// participant publishes for the given role, from the TXT record at
// _<role>._usef.<domain>. The record content must be "cs1." followed by
// base64 of either 32 (signing only) or 64 (signing || encryption) bytes;
// any other shape is a hard AuthenticationTimeout, matching
// original_source/.../transport.py:get_keys exactly.
func (r *Resolver) Keys(ctx context.Context, domain string, role message.Role) (Keys, error) {
	key := string(role) + "|" + domain
	v, err := r.keys.getOrResolve(key, func() (interface{}, error) {
		return r.lookupKeys(ctx, domain, role)
	})
	if err != nil {
		metrics.DiscoveryCacheLookups.WithLabelValues("keys", "error").Inc()
		return Keys{}, err
	}
	metrics.DiscoveryCacheLookups.WithLabelValues("keys", "ok").Inc()
	return v.(Keys), nil
}

func (r *Resolver) lookupKeys(ctx context.Context, domain string, role message.Role) (Keys, error) {
	name := fmt.Sprintf("_%s._usef.%s", role, domain)
	records, err := r.net.LookupTXT(ctx, name)
	if err != nil {
		if dnsErr, ok := err.(*net.DNSError); ok && dnsErr.IsNotFound {
			return Keys{}, envelope.ErrAuthenticationTimeout(
				fmt.Sprintf("could not retrieve public keys at %s: DNS name not found", name))
		}
		return Keys{}, nxdomainToServiceDiscovery(name, err)
	}
	if len(records) == 0 {
		return Keys{}, envelope.ErrAuthenticationTimeout(fmt.Sprintf("no TXT record found at %s", name))
	}

	record := records[0]
	const prefix = "cs1."
	if !strings.HasPrefix(record, prefix) {
		return Keys{}, envelope.ErrAuthenticationTimeout(fmt.Sprintf(
			"could not retrieve public keys at %s: invalid string (must start with %q, was: %s)", name, prefix, record))
	}

	encoded := record[len(prefix):]
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Keys{}, envelope.ErrAuthenticationTimeout(fmt.Sprintf(
			"could not retrieve public keys at %s: string %q is not valid base64", name, encoded))
	}

	switch len(combined) {
	case ed25519.PublicKeySize:
		return Keys{SigningKey: ed25519.PublicKey(combined)}, nil
	case 2 * ed25519.PublicKeySize:
		return Keys{
			SigningKey:    ed25519.PublicKey(combined[:ed25519.PublicKeySize]),
			EncryptionKey: combined[ed25519.PublicKeySize:],
		}, nil
	default:
		return Keys{}, envelope.ErrAuthenticationTimeout(fmt.Sprintf(
			"could not retrieve public key(s) at %s: decoded data should be %d or %d bytes, was %d",
			name, ed25519.PublicKeySize, 2*ed25519.PublicKeySize, len(combined)))
	}
}

// nxdomainToServiceDiscovery turns a DNS lookup failure into the generic
// discovery.Error the spec calls for, except key lookups which map
// unresolvable names straight to an AuthenticationTimeout (handled by the
// caller).
func nxdomainToServiceDiscovery(name string, err error) error {
	if dnsErr, ok := err.(*net.DNSError); ok {
		if dnsErr.IsNotFound {
			return errorf("could not retrieve record at %s: DNS name not found", name)
		}
		if dnsErr.IsTimeout || dnsErr.IsTemporary {
			return errorf("could not retrieve record at %s: no DNS server was available (SERVFAIL); "+
				"make sure your network setup is working properly, this is not a problem with the receiving participant", name)
		}
	}
	return errorf("could not retrieve record at %s: %v", name, err)
}
