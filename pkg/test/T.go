package ltest

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

type T interface {
	Helper()
	Fatalf(format string, args ...interface{})
	Cleanup(func())
	assert.TestingT
}

func NewRapidT(t *rapid.T) *RapidT {
	return &RapidT{
		T: t,
	}
}

type RapidT struct {
	*rapid.T
	cleanups []func()
}

func (r *RapidT) Helper() {
}

func (r *RapidT) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func (r *RapidT) Errorf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func (r *RapidT) Cleanup(fn func()) {
	r.cleanups = append(r.cleanups, fn)
}

func (r *RapidT) RunCleanup() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}
