package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbl-card-payment/application"
)

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "typed_values",
			pairs: []string{"mcpFlag=Y", "installmentPeriod=6", "tokenize=true", "officeId=0042"},
			want: map[string]interface{}{
				"mcpFlag":           "Y",
				"installmentPeriod": int64(6),
				"tokenize":          true,
				"officeId":          "0042",
			},
		},
		{
			name:  "last_write_wins",
			pairs: []string{"mcpFlag=N", "mcpFlag=Y"},
			want:  map[string]interface{}{"mcpFlag": "Y"},
		},
		{
			name:  "value_may_contain_equals",
			pairs: []string{"note=a=b"},
			want:  map[string]interface{}{"note": "a=b"},
		},
		{name: "missing_equals", pairs: []string{"mcpFlag"}, wantErr: true},
		{name: "empty_key", pairs: []string{"=Y"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOverrides(tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			b := application.NewRequestBuilder("M1", "https://merchant.example/cb")
			for _, opt := range opts {
				b = opt(b)
			}
			assert.Equal(t, tt.want, b.Overrides())
		})
	}
}

func TestSubmitCmd_RequiresFlags(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"submit", "--order-no", "ORD123"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
