// Package testing provides test utilities for the JobMatch library.
//
// It follows Go's convention of providing testing utilities in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - NewTestLogger: types.Logger that writes to the testing.T log
//   - SmallProblem / ContestedProblem / DirectorProblem: ready-made fixture
//     inputs for exercising solvers and the Matcher
//
// Example usage:
//
//	import (
//	    "testing"
//	    jmtest "github.com/speters9/JobMatch/testing"
//	)
//
//	func TestMyConsumer(t *testing.T) {
//	    workers, tasks := jmtest.ContestedProblem()
//	    logger := jmtest.NewTestLogger(t)
//	    // ...
//	}
package testing
