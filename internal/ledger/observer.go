package ledger

import (
	"github.com/iho/payproc/internal/domain"
)

// Observer is the side channel for per-record outcomes. Rejections are
// policy decisions, not failures, so they surface here instead of
// aborting the run.
type Observer interface {
	OnApplied(activity domain.AccountActivity)
	OnRejected(activity domain.AccountActivity, reason error)
	OnMalformed(err error)
}

// NopObserver discards all outcomes.
type NopObserver struct{}

func (NopObserver) OnApplied(domain.AccountActivity) {}

func (NopObserver) OnRejected(domain.AccountActivity, error) {}

func (NopObserver) OnMalformed(error) {}

// MultiObserver fans outcomes out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnApplied(activity domain.AccountActivity) {
	for _, o := range m {
		o.OnApplied(activity)
	}
}

func (m MultiObserver) OnRejected(activity domain.AccountActivity, reason error) {
	for _, o := range m {
		o.OnRejected(activity, reason)
	}
}

func (m MultiObserver) OnMalformed(err error) {
	for _, o := range m {
		o.OnMalformed(err)
	}
}
