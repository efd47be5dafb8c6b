package workflow

// Guard expressions usable in Job.If and Step.If. An empty guard means
// success().
const (
	GuardSuccess = "success()"
	GuardFailure = "failure()"
	GuardAlways  = "always()"
)

// EvalGuard evaluates a guard expression. failed is the state the
// guard conditions on: for a step guard, whether an earlier step in
// the same job failed; for a job guard, whether a dependency job
// failed. Unknown expressions never pass; Validate rejects them up
// front.
func EvalGuard(expr string, failed bool) bool {
	switch expr {
	case "", GuardSuccess:
		return !failed
	case GuardFailure:
		return failed
	case GuardAlways:
		return true
	}
	return false
}

func validGuard(expr string) bool {
	switch expr {
	case "", GuardSuccess, GuardFailure, GuardAlways:
		return true
	}
	return false
}
