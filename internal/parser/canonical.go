package parser

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Tracking query parameters stripped during URL normalization.
var trackingParams = map[string]bool{
	"ref": true, "source": true, "src": true, "fbclid": true, "gclid": true,
	"mc_cid": true, "mc_eid": true, "igshid": true,
}

// CanonicalID builds the dedup-stable identity for a posting. A job URL,
// when present, is normalized and hashed with the "url:" prefix; otherwise
// the normalized company+title+location+date-only posted date is hashed
// with the "hash:" prefix. Equal normalized identities always produce equal
// ids: this is the sole deduplication mechanism.
func CanonicalID(jobURL, company, title, location string, posted *time.Time) string {
	if u := strings.TrimSpace(jobURL); u != "" {
		return "url:" + digest(NormalizeURL(u))
	}

	date := ""
	if posted != nil {
		date = posted.Format("2006-01-02")
	}
	identity := strings.Join([]string{
		normalizeField(company),
		normalizeField(title),
		normalizeField(location),
		date,
	}, "|")
	return "hash:" + digest(identity)
}

// FallbackID hashes the first prefixLen characters of raw text, for postings
// that reached the fallback parse path and have no usable identity fields.
func FallbackID(rawText string, prefixLen int) string {
	if prefixLen <= 0 || prefixLen > len(rawText) {
		prefixLen = len(rawText)
	}
	return "fallback:" + digest(rawText[:prefixLen])
}

// NormalizeURL lowercases the host, strips the www. prefix, drops tracking
// query parameters (including utm_*), the fragment and any trailing slash.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(raw))
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Fragment = ""

	q := u.Query()
	for key := range q {
		lower := strings.ToLower(key)
		if trackingParams[lower] || strings.HasPrefix(lower, "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// CheckDuplicate reports whether the canonical id appears in existing.
// Matching is exact: canonical ids are already normalized.
func CheckDuplicate(canonicalID string, existing []string) bool {
	for _, id := range existing {
		if id == canonicalID {
			return true
		}
	}
	return false
}

func normalizeField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)
}
