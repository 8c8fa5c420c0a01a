package notify

import (
	"context"

	"github.com/okayr/okayr-api/internal/config"
)

// View names a client-side page whose cached data becomes stale after a
// mutation. The deployment's edge cache subscribes to these signals; the
// services only emit them.
type View string

const (
	ViewObjectives View = "objectives"
	ViewDashboard  View = "dashboard"
	ViewTasks      View = "tasks"
	ViewTeams      View = "teams"
	ViewCycles     View = "cycles"
	ViewCalendar   View = "calendar"
)

type Notifier interface {
	Revalidate(ctx context.Context, views ...View)
}

type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Revalidate(ctx context.Context, views ...View) {
	if len(views) == 0 {
		return
	}
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = string(v)
	}
	config.WithContext(ctx).WithField("views", names).Info("Views marked stale")
}
