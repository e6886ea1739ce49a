package helpers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jakehl/goid"
)

// RequestDateTimeLayout renders UTC with a literal "Z" instead of "+00:00".
const RequestDateTimeLayout = "2006-01-02T15:04:05Z07:00"

func GetUUId() string {
	v4UUID := goid.NewV4UUID()
	return fmt.Sprint(v4UUID.String())
}

// FormatRequestDateTime formats t in UTC at second precision, e.g.
// "2024-01-02T03:04:05Z".
func FormatRequestDateTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(RequestDateTimeLayout)
}

// WithQueryParam appends key=value to a callback URL, whether or not it
// already has a query string.
func WithQueryParam(base, key, value string) string {
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}
