// Package attendlink builds and parses the attendance links that clubs hand
// out as QR codes. A link is a capability: holding it only grants the right
// to record attendance for one event.
package attendlink

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const PathPrefix = "/event-attendance/"

var (
	ErrMalformedLink = errors.New("malformed attendance link")
)

// NewToken returns an unguessable URL-safe token for one event.
func NewToken() string {
	return uuid.NewString()
}

// Build produces `<base>/event-attendance/<url-encoded token>`.
func Build(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + PathPrefix + url.PathEscape(token)
}

// ParseToken extracts the token from an attendance link. Query parameters
// (returnUrl-style redirects) are tolerated and ignored; the token is
// URL-decoded exactly once.
func ParseToken(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", ErrMalformedLink
	}

	idx := strings.Index(parsed.EscapedPath(), PathPrefix)
	if idx < 0 {
		return "", ErrMalformedLink
	}

	encoded := parsed.EscapedPath()[idx+len(PathPrefix):]
	if encoded == "" || strings.Contains(encoded, "/") {
		return "", ErrMalformedLink
	}

	token, err := url.PathUnescape(encoded)
	if err != nil {
		return "", ErrMalformedLink
	}

	return token, nil
}

// QRPNG encodes the attendance link as a PNG at error-correction level H,
// so the poster survives being scanned from a phone photo.
func QRPNG(baseURL, token string, size int) ([]byte, error) {
	return qrcode.Encode(Build(baseURL, token), qrcode.High, size)
}
