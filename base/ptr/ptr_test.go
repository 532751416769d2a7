package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	now := time.Now()

	p1 := String(`abc123`)
	p2 := Int(123)
	p3 := Int32(4567)
	p4 := Int64(891011)
	p5 := Float64(689.777)
	p6 := Bool(true)
	p7 := Time(now)

	s.Equal(*p1, `abc123`)
	s.Equal(*p2, int(123))
	s.Equal(*p3, int32(4567))
	s.Equal(*p4, int64(891011))
	s.Equal(*p5, float64(689.777))
	s.Equal(*p6, true)
	s.Equal(*p7, now)
}

func TestPointerSuite(t *testing.T) {
	ps := new(pointerSuite)
	suite.Run(t, ps)
}
