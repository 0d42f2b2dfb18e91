package dma

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// HandoffSuite runs every handoff test under both wait modes.
type HandoffSuite struct {
	suite.Suite
	mode WaitMode
	h    *Handoff
}

func (s *HandoffSuite) SetupTest() {
	s.h = NewHandoff(s.mode)
}

func (s *HandoffSuite) TestInitiallyIdle() {
	s.Equal(Idle, s.h.State())
	_, ok := s.h.TryAcquire()
	s.False(ok)
	s.Zero(s.h.Grants())
	s.Zero(s.h.Overruns())
	s.Equal(s.mode, s.h.Mode())
}

func (s *HandoffSuite) TestGrantAndRelease() {
	s.h.HalfBoundaryCrossed(HalfA)
	s.Equal(Filling, s.h.State())

	half, err := s.h.Acquire(context.Background())
	s.Require().NoError(err)
	s.Equal(HalfA, half)

	s.Require().NoError(s.h.Release())
	s.Equal(Idle, s.h.State())
	s.ErrorIs(s.h.Release(), ErrNotFilling)

	s.h.HalfBoundaryCrossed(HalfB)
	half, ok := s.h.TryAcquire()
	s.True(ok)
	s.Equal(HalfB, half)
	s.Equal(uint64(2), s.h.Grants())
	s.Zero(s.h.Overruns())
}

func (s *HandoffSuite) TestOverrunKeepsGrant() {
	s.h.HalfBoundaryCrossed(HalfA)
	s.h.HalfBoundaryCrossed(HalfB)
	s.h.HalfBoundaryCrossed(HalfA)

	half, ok := s.h.TryAcquire()
	s.True(ok)
	s.Equal(HalfA, half)
	s.Equal(uint64(2), s.h.Overruns())
	s.Equal(uint64(1), s.h.Grants())
}

func (s *HandoffSuite) TestInvalidHalfIgnored() {
	s.h.HalfBoundaryCrossed(Half(0))
	s.h.HalfBoundaryCrossed(Half(5))
	s.Equal(Idle, s.h.State())
	s.Zero(s.h.Overruns())
}

func (s *HandoffSuite) TestAcquireCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.h.Acquire(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *HandoffSuite) TestAcquireWaitsForNotification() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan Half, 1)
	go func() {
		half, err := s.h.Acquire(ctx)
		if err == nil {
			got <- half
		}
		close(got)
	}()

	time.Sleep(10 * time.Millisecond)
	s.h.HalfBoundaryCrossed(HalfB)

	half, ok := <-got
	s.Require().True(ok)
	s.Equal(HalfB, half)
}

func TestHandoffSuite(t *testing.T) {
	suite.Run(t, &HandoffSuite{mode: WaitSpin})
	suite.Run(t, &HandoffSuite{mode: WaitBlock})
}

func TestParseWaitMode(t *testing.T) {
	t.Parallel()

	m, err := ParseWaitMode("spin")
	require.NoError(t, err)
	require.Equal(t, WaitSpin, m)
	require.Equal(t, "spin", m.String())

	m, err = ParseWaitMode("block")
	require.NoError(t, err)
	require.Equal(t, WaitBlock, m)

	m, err = ParseWaitMode("")
	require.NoError(t, err)
	require.Equal(t, WaitBlock, m)

	_, err = ParseWaitMode("sleep")
	require.Error(t, err)
}
