package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerHostPoolSize(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		hosts    int
		expected int
	}{
		{"single host keeps the budget", 32, 1, 32},
		{"even split", 30, 3, 10},
		{"remainder rounds up", 32, 3, 11},
		{"no hosts parsed yet", 32, 0, 32},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, perHostPoolSize(c.total, c.hosts))
		})
	}
}
