package mock

import "github.com/fwojciec/bfscrawl"

var _ bfscrawl.Observer = (*Observer)(nil)

// Observer is a mock implementation of bfscrawl.Observer.
// Nil function fields are ignored.
type Observer struct {
	LevelStartedFn func(level int)
	PageVisitedFn  func(url string, level int)
	FetchFailedFn  func(url string, err error)
	LinkAdmittedFn func(url string, level int)
	LinkRejectedFn func(reason bfscrawl.Reason)
}

func (o *Observer) LevelStarted(level int) {
	if o.LevelStartedFn != nil {
		o.LevelStartedFn(level)
	}
}

func (o *Observer) PageVisited(url string, level int) {
	if o.PageVisitedFn != nil {
		o.PageVisitedFn(url, level)
	}
}

func (o *Observer) FetchFailed(url string, err error) {
	if o.FetchFailedFn != nil {
		o.FetchFailedFn(url, err)
	}
}

func (o *Observer) LinkAdmitted(url string, level int) {
	if o.LinkAdmittedFn != nil {
		o.LinkAdmittedFn(url, level)
	}
}

func (o *Observer) LinkRejected(reason bfscrawl.Reason) {
	if o.LinkRejectedFn != nil {
		o.LinkRejectedFn(reason)
	}
}
