package lsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame(t *testing.T) {
	test := []struct {
		name    string
		message string
		want    []byte
		wantErr error
	}{
		{"ascii", "HI", []byte("HI%%%"), nil},
		{"latin-1", "café", []byte{'c', 'a', 'f', 0xe9, '%', '%', '%'}, nil},
		{"max code point", "ÿ", []byte{0xff, '%', '%', '%'}, nil},
		{"percent inside", "5% off", []byte("5% off%%%"), nil},
		{"double percent inside", "a%%b", []byte("a%%b%%%"), nil},
		{"ends with percent", "5%", nil, ErrAmbiguousMessage},
		{"contains terminator", "a%%%b", nil, ErrAmbiguousMessage},
		{"empty", "", nil, ErrEmptyMessage},
		{"out of range", "aĀ", nil, ErrCharacterOutOfRange},
		{"emoji", "hi 🍣", nil, ErrCharacterOutOfRange},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Frame(tt.message)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.message, unframe(got[:len(got)-len(Terminator)]))
		})
	}

	t.Run("error names the character", func(t *testing.T) {
		_, err := Frame("abあ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "U+3042")
		assert.Contains(t, err.Error(), "at 2")
	})

	assert.Equal(t, 40, FramedBits(2))
	assert.Equal(t, 32, FramedBits(1))
}
