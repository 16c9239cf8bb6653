package observability

import (
	"log/slog"

	"github.com/aretw0/sileo/pkg/domain"
)

// LogHooks returns hooks that log every store mutation at info level and
// every sync and timer transition at debug level.
func LogHooks(logger *slog.Logger) domain.Hooks {
	toast := func(e *domain.ToastEvent) {
		logger.Info(string(e.Type),
			"id", e.ID,
			"instance", e.InstanceID,
			"state", e.State,
			"position", e.Position,
		)
	}
	return domain.Hooks{
		OnCreate:  toast,
		OnUpdate:  toast,
		OnDismiss: toast,
		OnRemove:  toast,
		OnSync: func(e *domain.SyncEvent) {
			logger.Debug("sync",
				"items", e.Items,
				"instances", e.Instances,
				"timers", e.Timers,
				"created", e.Created,
				"destroyed", e.Destroyed,
			)
		},
		OnTimer: func(e *domain.TimerEvent) {
			logger.Debug("timer", "key", e.Key, "action", e.Action)
		},
	}
}
