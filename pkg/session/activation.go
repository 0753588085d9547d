package session

import (
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/recorder"
	"github.com/LambdaTest/xdist-tracker/pkg/replayer"
)

// Activation holds everything needed to pick the plugins of a session.
type Activation struct {
	Role         core.Role
	RootDir      string
	Prefix       string
	ReplaySource core.RecordSource
	Uploader     core.RecordUploader
}

// Plugins returns the plugins to register for the session. The recorder is
// active whenever parallelism was requested (it only flushes on workers).
// The replayer is active only for a non parallel session with a replay source,
// replaying a fixed order on several workers makes no sense.
func Plugins(a Activation, logger lumber.Logger) []core.Plugin {
	if a.Role.Parallel() {
		if a.ReplaySource != nil {
			logger.Warnf("replay source %s ignored, replay requires a single worker", a.ReplaySource)
		}
		var opts []recorder.Option
		if a.Uploader != nil {
			opts = append(opts, recorder.WithUploader(a.Uploader))
		}
		return []core.Plugin{recorder.New(a.Role, a.RootDir, a.Prefix, logger, opts...)}
	}
	if a.ReplaySource != nil {
		return []core.Plugin{replayer.New(a.ReplaySource, logger)}
	}
	return nil
}
