package crawl

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/bfscrawl"
	"go.uber.org/zap"
)

// AllowedDomains is the static set of domains that keep a host in scope.
type AllowedDomains []string

// NewAllowedDomains lower-cases and trims domains, dropping blanks.
func NewAllowedDomains(domains []string) AllowedDomains {
	var d AllowedDomains
	for _, domain := range domains {
		if domain = strings.ToLower(strings.TrimSpace(domain)); domain != "" {
			d = append(d, domain)
		}
	}
	return d
}

// Match reports whether host contains any allowed domain.
func (d AllowedDomains) Match(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range d {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// AdmissionGate decides whether a raw discovered link enters the frontier.
// It is the only writer of the frontier's next generation.
//
// Gates are evaluated in order and the first failure rejects the link:
// parse and scheme, allowed domain, exclusion rules, canonicalization,
// exclusion rules again on the canonical form, duplicate, HTML probe.
// Rejection is reported as an Outcome, never as an error.
type AdmissionGate struct {
	Domains       AllowedDomains
	Exclusions    *ExclusionCache
	Canonicalizer bfscrawl.Canonicalizer
	Probe         bfscrawl.HTMLProbe
	Frontier      bfscrawl.URLFrontier
	Logger        *zap.Logger

	extracted atomic.Int64
}

// Admit passes raw through every gate and queues it into the next
// generation on success. Each admission increments the extracted count.
func (g *AdmissionGate) Admit(ctx context.Context, raw string) bfscrawl.Outcome {
	canonical, reason := g.check(ctx, raw, true)
	if reason != "" {
		return g.reject(raw, reason)
	}
	if !g.Frontier.AddToNext(canonical) {
		return g.reject(raw, bfscrawl.ReasonDuplicate)
	}
	g.extracted.Add(1)
	return bfscrawl.Admit(canonical)
}

// Seed passes raw through every gate except the duplicate check and places
// it into the current generation. The seed does not count as extracted.
func (g *AdmissionGate) Seed(ctx context.Context, raw string) bfscrawl.Outcome {
	canonical, reason := g.check(ctx, raw, false)
	if reason != "" {
		return g.reject(raw, reason)
	}
	g.Frontier.SeedCurrent(canonical)
	return bfscrawl.Admit(canonical)
}

// Extracted returns the number of links admitted so far.
func (g *AdmissionGate) Extracted() int {
	return int(g.extracted.Load())
}

// check evaluates the gates and returns the canonical URL or the reason
// the link was rejected. The duplicate check runs before the HTML probe so
// known URLs never cost a request.
func (g *AdmissionGate) check(ctx context.Context, raw string, dedup bool) (string, bfscrawl.Reason) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", bfscrawl.ReasonMalformed
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "", bfscrawl.ReasonMalformed
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", bfscrawl.ReasonUnsupportedScheme
	}
	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return "", bfscrawl.ReasonMalformed
	}

	if !g.Domains.Match(hostname) {
		return "", bfscrawl.ReasonOutOfDomain
	}

	host := authority(scheme, hostname, u.Port())

	g.Exclusions.RulesFor(ctx, scheme, host)
	if g.Exclusions.IsExcluded(host, raw) {
		return "", bfscrawl.ReasonExcluded
	}

	canonical, err := g.Canonicalizer.Canonicalize(raw)
	if err != nil {
		return "", bfscrawl.ReasonMalformed
	}

	// Host case, dot segments and escapes may hide a rule in the raw form.
	if g.Exclusions.IsExcluded(host, canonical) {
		return "", bfscrawl.ReasonExcluded
	}

	if dedup && g.Frontier.Seen(canonical) {
		return "", bfscrawl.ReasonDuplicate
	}

	ok, err := g.Probe.IsHTML(ctx, canonical)
	if err != nil {
		g.logger().Debug("html probe failed", zap.String("url", canonical), zap.Error(err))
		return "", bfscrawl.ReasonNotHTML
	}
	if !ok {
		return "", bfscrawl.ReasonNotHTML
	}
	return canonical, ""
}

// authority returns the key exclusion rules are cached under: the
// lower-cased hostname, plus the port unless it is the scheme's default.
func authority(scheme, hostname, port string) string {
	switch {
	case port == "",
		scheme == "http" && port == "80",
		scheme == "https" && port == "443":
		return hostname
	}
	return net.JoinHostPort(hostname, port)
}

func (g *AdmissionGate) reject(raw string, reason bfscrawl.Reason) bfscrawl.Outcome {
	g.logger().Debug("link rejected", zap.String("url", raw), zap.String("reason", string(reason)))
	return bfscrawl.Reject(reason)
}

func (g *AdmissionGate) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
