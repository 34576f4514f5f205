package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursemanagement/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPruner struct {
	mock.Mock
}

func (m *MockPruner) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

func TestSchedulePrune(t *testing.T) {
	called := make(chan struct{}, 4)
	pruner := new(MockPruner)
	pruner.On("Prune", mock.Anything, time.Hour).
		Run(func(mock.Arguments) { called <- struct{}{} }).
		Return(1, nil).Once()
	pruner.On("Prune", mock.Anything, time.Hour).
		Run(func(mock.Arguments) { called <- struct{}{} }).
		Return(0, errors.New("store down"))

	s := NewScheduler(logger.NewNopLogger())
	require.NoError(t, s.SchedulePrune("@every 1s", pruner, time.Hour))
	s.Start()

	for i := 0; i < 2; i++ {
		select {
		case <-called:
		case <-time.After(5 * time.Second):
			t.Fatal("prune job did not run")
		}
	}
	s.Stop()
	pruner.AssertCalled(t, "Prune", mock.Anything, time.Hour)
}

func TestAddFuncRejectsBadSpec(t *testing.T) {
	s := NewScheduler(logger.NewNopLogger())
	assert.Error(t, s.AddFunc("every now and then", "bad", func() {}))
}
