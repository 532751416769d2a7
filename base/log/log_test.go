package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithFieldAccumulates(t *testing.T) {
	req := require.New(t)

	l := Log().WithField("component", "test").WithField("chainId", 1)
	req.Equal([]interface{}{"component", "test", "chainId", 1}, l.fields)
}

func TestBranchedLoggersDoNotShareState(t *testing.T) {
	req := require.New(t)

	parent := Log().WithField("component", "test")
	a := parent.WithField("call", "a")
	b := parent.WithField("call", "b")

	req.Equal([]interface{}{"component", "test", "call", "a"}, a.fields)
	req.Equal([]interface{}{"component", "test", "call", "b"}, b.fields)
	req.Equal([]interface{}{"component", "test"}, parent.fields)
}

func TestWithFields(t *testing.T) {
	req := require.New(t)

	l := Log().WithFields(Fields{"listingId": "abc"})
	req.Equal([]interface{}{"listingId", "abc"}, l.fields)
}
