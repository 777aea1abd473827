// URL and domain rules. The registrable domain of a page locates the
// crawl-control files (robots.txt, sitemap.xml) at the site root and
// gives the label links are classified against.

package crawl

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

// Preview lengths for crawl-control file bodies.
const (
	PreviewLength = 500
	ReportLength  = 1000
)

// splitDomain returns the registrable domain label and its public suffix
// for host. IPs and single-label hosts have no suffix and keep the whole host.
func splitDomain(host string) (label, suffix string) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || net.ParseIP(host) != nil {
		return host, ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host, ""
	}
	ps, _ := publicsuffix.PublicSuffix(etld1)
	return strings.TrimSuffix(etld1, "."+ps), ps
}

// DomainLabel returns the second-level label of a URL's registrable domain,
// e.g. "example" for https://www.example.co.uk/page.
func DomainLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	label, _ := splitDomain(parsed.Hostname())
	return label
}

// IsInternalHref reports whether href counts as an internal link for a page
// whose domain label is label. It is a substring check, not an origin check:
// any href containing the label is internal.
func IsInternalHref(href, label string) bool {
	return strings.Contains(href, label)
}

// SiteRoot returns scheme://registrable-domain for rawURL, keeping an
// explicit port. https://blog.example.com/a becomes https://example.com.
func SiteRoot(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Hostname() == "" {
		return "", fmt.Errorf("URL %q has no scheme or host", rawURL)
	}

	label, suffix := splitDomain(parsed.Hostname())
	host := label
	if suffix != "" {
		host = label + "." + suffix
	}
	if strings.Contains(host, ":") {
		// IPv6 literal.
		host = "[" + host + "]"
	}
	if port := parsed.Port(); port != "" {
		host = host + ":" + port
	}
	return parsed.Scheme + "://" + host, nil
}

// Truncate keeps the first n runes of s and appends "..." when s was longer.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
