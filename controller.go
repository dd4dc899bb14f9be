package handoff

import (
	"sync"
	"sync/atomic"
)

type starter struct {
	val  atomic.Int32
	once sync.Once
	err  error
	f    func() error
}

func (p *starter) Start() error {
	p.once.Do(func() {
		p.err = p.f()
	})
	if val := p.val.Load(); val >= 1 {
		return ErrMultipleStart
	}
	p.val.Add(1)
	return p.err
}

type stopper struct {
	val  atomic.Int32
	once sync.Once
	err  error
	f    func() error
}

func (p *stopper) Stop() error {
	p.once.Do(func() {
		p.err = p.f()
	})
	if val := p.val.Load(); val >= 1 {
		return ErrMultipleStop
	}
	p.val.Add(1)
	return p.err
}
