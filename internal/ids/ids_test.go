package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"generated", New(), true},
		{"fixed hex", "507f1f77bcf86cd799439011", true},
		{"empty", "", false},
		{"too short", "507f1f77bcf86cd79943901", false},
		{"non hex", "zzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"numeric user id", "42", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.id))
		})
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
