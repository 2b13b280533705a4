package tlv_test

import (
	"testing"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/tlv-go/format/tlv"
)

func TestConfigUnmarshalMap(t *testing.T) {
	tests := []struct {
		name    string
		m       map[string]interface{}
		want    tlv.Config
		wantErr bool
	}{
		{
			name: "empty",
			m:    map[string]interface{}{},
			want: tlv.DefaultConfig(),
		},
		{
			name: "all",
			m: map[string]interface{}{
				"start_offset":  0,
				"vendor_escape": 100,
				"enterprise":    42,
				"workers":       8,
			},
			want: tlv.Config{StartOffset: 0, VendorEscape: 100, Enterprise: 42, Workers: 8},
		},
		{
			name: "json numbers and strings",
			m: map[string]interface{}{
				"start_offset": float64(2),
				"enterprise":   "99",
			},
			want: tlv.Config{StartOffset: 2, VendorEscape: 127, Enterprise: 99, Workers: 4},
		},
		{
			name: "workers default",
			m:    map[string]interface{}{"workers": 0},
			want: tlv.DefaultConfig(),
		},
		{
			name: "max start offset",
			m:    map[string]interface{}{"start_offset": "65535"},
			want: tlv.Config{StartOffset: 65535, VendorEscape: 127, Enterprise: 1233, Workers: 4},
		},
		{
			name:    "start offset too large",
			m:       map[string]interface{}{"start_offset": 70000},
			wantErr: true,
		},
		{
			name:    "start offset negative",
			m:       map[string]interface{}{"start_offset": -1},
			wantErr: true,
		},
		{
			name:    "start offset too large float",
			m:       map[string]interface{}{"start_offset": float64(65540)},
			wantErr: true,
		},
		{
			name:    "start offset fraction",
			m:       map[string]interface{}{"start_offset": 4.5},
			wantErr: true,
		},
		{
			name:    "start offset string too large",
			m:       map[string]interface{}{"start_offset": "65536"},
			wantErr: true,
		},
		{
			name:    "unknown key",
			m:       map[string]interface{}{"start": 1},
			wantErr: true,
		},
		{
			name:    "invalid vendor escape",
			m:       map[string]interface{}{"vendor_escape": 0},
			wantErr: true,
		},
		{
			name:    "negative enterprise",
			m:       map[string]interface{}{"enterprise": -1},
			wantErr: true,
		},
		{
			name:    "wrong type",
			m:       map[string]interface{}{"workers": "many"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tlv.Config{}
			err := cfg.UnmarshalMap(tt.m)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.IsKind(errors.K.Invalid, err))
				require.Equal(t, tlv.Config{}, cfg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, cfg)
		})
	}
}
