package conf

import (
	"github.com/benbjohnson/clock"
)

// Clock is the process-wide time source. Tests run against a mock so that
// nothing in the planner depends on wall time.
var Clock clock.Clock

func InitClock() {
	if IsTesting {
		Log.Debugf("running in testing mode")
		Clock = clock.NewMock()
	} else {
		Clock = clock.New()
	}
}
