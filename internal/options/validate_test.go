package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasreduce/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantMsg string
	}{
		{name: "exactly one", sources: []bool{false, true, false}},
		{name: "none", sources: []bool{false, false}, wantMsg: "no input"},
		{name: "no sources at all", sources: nil, wantMsg: "no input"},
		{name: "two", sources: []bool{true, true, false}, wantMsg: "too many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("no input", "too many", tt.sources...)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cfgErr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "input", cfgErr.Option)
		})
	}
}
