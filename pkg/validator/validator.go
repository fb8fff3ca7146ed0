package validator

import (
	"net/url"
	"strings"
)

// hierarchical schemes always carry an authority; "http:" alone is not a URL.
var hierarchical = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// ValidateURL checks that urlStr parses as an absolute URL.
// Any scheme is accepted; web schemes must also name a host.
func ValidateURL(urlStr string) error {
	urlStr = strings.TrimSpace(urlStr)

	if urlStr == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return ErrInvalidURL
	}

	if !parsedURL.IsAbs() {
		return ErrNotAbsolute
	}

	if hierarchical[strings.ToLower(parsedURL.Scheme)] && parsedURL.Host == "" {
		return ErrInvalidHost
	}

	if parsedURL.Host == "" && parsedURL.Opaque == "" && parsedURL.Path == "" {
		return ErrInvalidURL
	}

	return nil
}

// ValidateShortCode rejects blank short codes before they reach a URL path.
func ValidateShortCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyShortCode
	}
	return nil
}
