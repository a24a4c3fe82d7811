package cbhttp

import (
	"bytes"
	"encoding/json"
	"io"

	lhttp "github.com/vizlab-ci/nbprofiler/pkg/http"
)

func BodyObj(obj interface{}) RequestOption {
	return func(r *Request) *Request {
		buffer := &bytes.Buffer{}

		if err := json.NewEncoder(buffer).Encode(obj); err != nil {
			r.HErr = &lhttp.HttpError{Err: err}
			return r
		}

		r.Body = io.NopCloser(buffer)
		return AddHeader("content-type", "application/json")(r)
	}
}

func Body(reader io.Reader) RequestOption {
	if readcloser, ok := reader.(io.ReadCloser); ok {
		return func(r *Request) *Request {
			r.Body = readcloser
			return r
		}
	} else {
		return func(r *Request) *Request {
			r.Body = io.NopCloser(reader)
			return r
		}
	}
}
