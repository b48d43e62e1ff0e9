package fakturo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"created", false},
		{"sent", false},
		{"paid", false},
		{"", true},
		{"overdue", true},
		{"Paid", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			state, err := NewState(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidValue))
				assert.True(t, state.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, state.String())
		})
	}
}

func TestStateConstructors(t *testing.T) {
	assert.Equal(t, "created", StateCreated().String())
	assert.Equal(t, "sent", StateSent().String())
	assert.Equal(t, "paid", StatePaid().String())
	assert.False(t, StatePaid().IsZero())
	assert.True(t, State{}.IsZero())
}
