package cbhttp

import (
	lhttp "github.com/vizlab-ci/nbprofiler/pkg/http"
)

type RunnerFunc func(r *Request) (*Response, *lhttp.HttpError)
type MiddlewareFunc func(next RunnerFunc) RunnerFunc
