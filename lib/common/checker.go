package common

// Checker is a chain of validation steps sharing state through the checker
// value itself; the transaction envelope and the command dispatcher are
// both validated this way.
type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

type CheckerFunc func(Checker, ...interface{}) error

// CheckerStop ends the chain early without failing it.
type CheckerStop struct {
	Message string
}

func (c CheckerStop) Error() string {
	return "stop checker: " + c.Message
}

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) error {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	var err error
	for i, f := range checker.GetFuncs() {
		if err = f(checker, args...); err != nil {
			deferFunc(i, checker, err)
			if _, ok := err.(CheckerStop); ok {
				return nil
			}
			return err
		}
		deferFunc(i, checker, err)
	}
	return nil
}
