package voting

import (
	"math"

	"boscoin.io/announcer/lib/errors"
)

type ThresholdPolicy interface {
	Threshold() (int, error)
	Voters() int
	SetVoters(int) error
}

// TwoThirdsThresholdPolicy requires ceil(2N/3) confirmations out of N
// voters.
type TwoThirdsThresholdPolicy struct {
	voters int
}

func NewTwoThirdsThresholdPolicy(voters int) (*TwoThirdsThresholdPolicy, error) {
	p := &TwoThirdsThresholdPolicy{}
	if err := p.SetVoters(voters); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *TwoThirdsThresholdPolicy) Voters() int {
	return p.voters
}

func (p *TwoThirdsThresholdPolicy) SetVoters(n int) error {
	if n < 0 {
		return errors.InvalidInput.Clone().SetData("voters", n)
	}

	p.voters = n
	return nil
}

func (p *TwoThirdsThresholdPolicy) Threshold() (int, error) {
	if p.voters > (math.MaxInt-2)/2 {
		return 0, errors.InvalidInput.Clone().
			SetData("voters", p.voters).
			SetData("reason", "cannot calculate majority")
	}

	return (p.voters*2 + 2) / 3, nil
}
