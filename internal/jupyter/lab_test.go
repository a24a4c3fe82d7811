package jupyter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlab-ci/nbprofiler/pkg/clientbase"
	cbhttp "github.com/vizlab-ci/nbprofiler/pkg/clientbase/http"
)

func newTestLab(t *testing.T, handler http.Handler) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient, err := cbhttp.NewInstance(&cbhttp.Config{})
	require.NoError(t, err)
	connections, err := clientbase.NewConnections(&clientbase.Config{}, httpClient)
	require.NoError(t, err)

	return NewLab(&Config{
		BaseUrl:    server.URL,
		Token:      "secret",
		KernelName: "python3",
	}, connections)
}

func TestListSessionsAndClear(t *testing.T) {
	deleted := make([]string, 0)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]Session{
			{ID: "s1", Path: "a.ipynb", Kernel: &Kernel{ID: "k1", Name: "python3"}},
			{ID: "s2", Path: "b.ipynb"},
		})
	})
	mux.HandleFunc("/api/sessions/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "DELETE", r.Method)
		deleted = append(deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	lab := newTestLab(t, mux)
	require.NoError(t, lab.ClearSessions(context.Background()))
	assert.Equal(t, []string{"/api/sessions/s1", "/api/sessions/s2"}, deleted)
}

func TestKernelIDByName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/kernels", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Kernel{
			{ID: "k-other", Name: "julia"},
			{ID: "k-py", Name: "python3"},
		})
	})

	lab := newTestLab(t, mux)
	id, err := lab.KernelIDByName(context.Background(), "python3")
	require.NoError(t, err)
	assert.Equal(t, "k-py", id)

	_, err = lab.KernelIDByName(context.Background(), "rust")
	assert.ErrorIs(t, err, ErrKernelNotFound)
}

func TestKernelUsageAndPID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/metrics/v1/kernel_usage/get_usage/k-py", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]interface{}{
				"pid":           4242,
				"kernel_cpu":    12.5,
				"kernel_memory": 33.1,
			},
		})
	})

	lab := newTestLab(t, mux)
	usage, err := lab.KernelUsage(context.Background(), "k-py")
	require.NoError(t, err)
	assert.Equal(t, 4242, usage.PID)
	assert.Equal(t, 12.5, usage.KernelCPU)

	pid, err := lab.KernelPID(context.Background(), "k-py")
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)
}

func TestUploadAndDeleteNotebook(t *testing.T) {
	nbPath := filepath.Join(t.TempDir(), "run.ipynb")
	require.NoError(t, os.WriteFile(nbPath, []byte(`{"cells": [], "metadata": {}, "nbformat": 4, "nbformat_minor": 5}`), 0644))

	var uploaded map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/contents/run.ipynb", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "PUT":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&uploaded))
			w.WriteHeader(http.StatusCreated)
		case "DELETE":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	lab := newTestLab(t, mux)
	ctx := context.Background()
	require.NoError(t, lab.UploadNotebook(ctx, nbPath))
	assert.Equal(t, "notebook", uploaded["type"])
	assert.Equal(t, "json", uploaded["format"])
	require.NoError(t, lab.DeleteNotebook(ctx, "run.ipynb"))
}

func TestNotebookURL(t *testing.T) {
	lab := NewLab(&Config{BaseUrl: "http://host:8888", Token: "tok"}, &clientbase.Connections{})
	assert.Equal(t, "http://host:8888/lab/tree/run.ipynb/?token=tok", lab.NotebookURL("/tmp/notebooks/run.ipynb"))
}

func TestRestartKernelError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/kernels/k-py/restart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	lab := newTestLab(t, mux)
	assert.Error(t, lab.RestartKernel(context.Background(), "k-py"))
}
