package observability

import (
	"log/slog"

	"github.com/aretw0/parley/pkg/domain"
)

// Combine fans every event out to each set of hooks, in order.
func Combine(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnNodeEnter != nil {
					h.OnNodeEnter(e)
				}
			}
		},
		OnChoice: func(e *domain.ChoiceEvent) {
			for _, h := range all {
				if h.OnChoice != nil {
					h.OnChoice(e)
				}
			}
		},
		OnReject: func(e *domain.RejectEvent) {
			for _, h := range all {
				if h.OnReject != nil {
					h.OnReject(e)
				}
			}
		},
		OnComplete: func(e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnComplete != nil {
					h.OnComplete(e)
				}
			}
		},
		OnReset: func(e *domain.NodeEvent) {
			for _, h := range all {
				if h.OnReset != nil {
					h.OnReset(e)
				}
			}
		},
	}
}

// LogHooks writes every event to logger at Info, rejections at Warn.
func LogHooks(logger *slog.Logger, label func(domain.NodeID) string) domain.LifecycleHooks {
	if label == nil {
		label = func(id domain.NodeID) string { return domain.To(id).String() }
	}
	return domain.LifecycleHooks{
		OnNodeEnter: func(e *domain.NodeEvent) {
			logger.Info("node_enter", "node", label(e.NodeID))
		},
		OnChoice: func(e *domain.ChoiceEvent) {
			to := "end"
			if id, ok := e.Target.Node(); ok {
				to = label(id)
			}
			logger.Info("choice", "from", label(e.From), "index", e.Index, "to", to)
		},
		OnReject: func(e *domain.RejectEvent) {
			logger.Warn("choice_rejected", "node", label(e.NodeID), "index", e.Index, "reason", Reason(e.Err))
		},
		OnComplete: func(e *domain.NodeEvent) {
			logger.Info("dialogue_complete", "node", label(e.NodeID))
		},
		OnReset: func(e *domain.NodeEvent) {
			logger.Info("reset", "start", label(e.NodeID))
		},
	}
}
