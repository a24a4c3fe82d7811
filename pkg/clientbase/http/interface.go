package cbhttp

import lhttp "github.com/vizlab-ci/nbprofiler/pkg/http"

type Client interface {
	Do(r *Request, m ...MiddlewareFunc) (*Response, *lhttp.HttpError)
}
