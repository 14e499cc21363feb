package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecker(t *testing.T) {
	limit := 10
	funcs := []CheckerFunc{}
	var dones []interface{}
	for i := 0; i < limit; i++ {
		f := func(checker Checker, args ...interface{}) error {
			dones = append(dones, checker)
			return nil
		}
		funcs = append(funcs, f)
	}

	checker := &DefaultChecker{funcs}
	require.NoError(t, RunChecker(checker, DefaultDeferFunc))
	require.Equal(t, limit, len(dones))
}

type CheckerWithProperties struct {
	DefaultChecker

	P0 int
}

func TestCheckerWithProperties(t *testing.T) {
	f0 := func(c Checker, args ...interface{}) error {
		c.(*CheckerWithProperties).P0 = 99
		return nil
	}
	f1 := func(c Checker, args ...interface{}) error {
		if c.(*CheckerWithProperties).P0 != 99 {
			return errors.New("P0 is not set")
		}
		return nil
	}

	checker := &CheckerWithProperties{DefaultChecker: DefaultChecker{[]CheckerFunc{f0, f1}}}
	require.NoError(t, RunChecker(checker, nil))
}

func TestCheckerFailAndStop(t *testing.T) {
	var called []int
	mark := func(i int, err error) CheckerFunc {
		return func(Checker, ...interface{}) error {
			called = append(called, i)
			return err
		}
	}

	failing := &DefaultChecker{[]CheckerFunc{mark(0, nil), mark(1, errors.New("boom")), mark(2, nil)}}
	var failedAt int = -1
	err := RunChecker(failing, func(i int, _ Checker, err error) {
		if err != nil {
			failedAt = i
		}
	})
	require.EqualError(t, err, "boom")
	require.Equal(t, 1, failedAt)
	require.Equal(t, []int{0, 1}, called)

	called = nil
	stopping := &DefaultChecker{[]CheckerFunc{mark(0, CheckerStop{"done"}), mark(1, nil)}}
	require.NoError(t, RunChecker(stopping, nil))
	require.Equal(t, []int{0}, called)
}
