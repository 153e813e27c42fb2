package registry

import (
	"github.com/medforge/ruleflow/pkg/actions/comment"
	"github.com/medforge/ruleflow/pkg/actions/escalate"
	"github.com/medforge/ruleflow/pkg/actions/notification"
	"github.com/medforge/ruleflow/pkg/actions/status"
	"github.com/medforge/ruleflow/pkg/actions/task"
	"github.com/medforge/ruleflow/pkg/protocol"
)

// RegisterDefaultActions wires the built-in action set against the host's
// collaborators. Action types outside this set stay unregistered and are
// reported as skipped by the executor.
func (r *Registry) RegisterDefaultActions(notifier protocol.Notifier, directory protocol.UserDirectory) {
	r.RegisterAction(notification.NewFactory(notifier, directory))
	r.RegisterAction(task.NewFactory(notifier, directory))
	r.RegisterAction(status.NewFactory())
	r.RegisterAction(escalate.NewFactory(notifier, directory))
	r.RegisterAction(comment.NewFactory())
}
