package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/core"
)

// proxySet is the parsed list of trusted proxy prefixes.
type proxySet []netip.Prefix

// parseProxies accepts CIDRs and bare addresses. Invalid entries are logged
// and skipped so a typo in SECURITY_TRUSTED_PROXIES does not stop the console.
func parseProxies(entries []string) proxySet {
	var set proxySet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			set = append(set, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn("realip: invalid trusted proxy, skipping", "proxy", entry, "error", err)
			continue
		}
		set = append(set, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return set
}

func (s proxySet) contains(addr netip.Addr) bool {
	for _, prefix := range s {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// TrustedRealIP rewrites RemoteAddr from X-Real-IP, then the first
// X-Forwarded-For hop, when the connection comes from a trusted proxy.
// Headers from anyone else are ignored, so the rate limiter and the audit
// trail cannot be fooled by a client-supplied address.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	proxies := parseProxies(trusted)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if remote, ok := remoteAddr(r.RemoteAddr); ok && proxies.contains(remote) {
				if addr, ok := forwardedFor(r.Header); ok {
					r.RemoteAddr = addr.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// forwardedFor returns the client address a proxy reported. A header that
// does not hold a valid address is treated as absent.
func forwardedFor(h http.Header) (netip.Addr, bool) {
	if rip := h.Get("X-Real-IP"); rip != "" {
		addr, err := netip.ParseAddr(strings.TrimSpace(rip))
		return addr, err == nil
	}
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		addr, err := netip.ParseAddr(strings.TrimSpace(first))
		return addr, err == nil
	}
	return netip.Addr{}, false
}

func remoteAddr(hostport string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(hostport); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(hostport)
	return addr.Unmap(), err == nil
}

// RequestMetadata stores the client IP and User-Agent in the request context.
// The console service copies both onto every audit entry.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithIPAddress(r.Context(), clientIP(r))
		ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIP is RemoteAddr without the port. Run after TrustedRealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
