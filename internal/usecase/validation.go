package usecase

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
	personIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)
)

// StripHTMLTags removes markup from attacker-controlled free text before it
// is persisted. Display strings arriving through the ingress webhook all go
// through this.
func StripHTMLTags(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

func IsValidPersonID(id string) bool {
	return personIDPattern.MatchString(id)
}

// IsValidHTTPURL accepts absolute http/https URLs only.
func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsLinkedInURL additionally requires the host to be linkedin.com or one of
// its subdomains.
func IsLinkedInURL(raw string) bool {
	if !IsValidHTTPURL(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}
