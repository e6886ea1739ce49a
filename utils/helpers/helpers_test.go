package helpers

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestGetUUId(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GetUUId()
		assert.Regexp(t, uuidV4, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestFormatRequestDateTime(t *testing.T) {
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "utc", at: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
		{name: "local_zone_converted", at: time.Date(2024, 1, 2, 8, 49, 5, 0, kathmandu), want: "2024-01-02T03:04:05Z"},
		{name: "sub_second_dropped", at: time.Date(2024, 1, 2, 3, 4, 5, 999999999, time.UTC), want: "2024-01-02T03:04:05Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRequestDateTime(tt.at))
		})
	}
}

func TestWithQueryParam(t *testing.T) {
	assert.Equal(t, "https://m.example/cb?payment=success", WithQueryParam("https://m.example/cb", "payment", "success"))
	assert.Equal(t, "https://m.example/cb?shop=1&payment=backend", WithQueryParam("https://m.example/cb?shop=1", "payment", "backend"))
}
