package jupyter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/pkg/clientbase"
	cbhttp "github.com/vizlab-ci/nbprofiler/pkg/clientbase/http"
)

// Lab talks to a JupyterLab instance over its REST API.
type Lab struct {
	cfg         *Config
	connections *clientbase.Connections
}

var _ Client = &Lab{}

func NewLab(cfg *Config, connections *clientbase.Connections) Client {
	return &Lab{
		cfg:         cfg,
		connections: connections,
	}
}

func (l *Lab) newRequest(ctx context.Context, method string, url string) *cbhttp.Request {
	req := cbhttp.NewRequest(ctx, method, url)
	req.Header = make(map[string][]string)
	req.Header.Set("Authorization", fmt.Sprintf("token %s", l.cfg.Token))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (l *Lab) ListSessions(ctx context.Context) ([]Session, error) {
	url := fmt.Sprintf("%s/api/sessions", l.cfg.BaseUrl)
	resp, herr := l.connections.HttpClient.Do(l.newRequest(ctx, "GET", url))
	if herr != nil {
		log.Debugf("failed to list sessions: %s", herr)
		return nil, herr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var sessions []Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (l *Lab) DeleteSession(ctx context.Context, sessionId string) error {
	url := fmt.Sprintf("%s/api/sessions/%s", l.cfg.BaseUrl, sessionId)
	if herr := l.connections.HttpClient.DoNoResponse(l.newRequest(ctx, "DELETE", url)); herr != nil {
		log.Debugf("failed to shut down session %s: %s", sessionId, herr)
		return herr
	}
	return nil
}

// ClearSessions shuts down every active session (notebooks, consoles,
// terminals) so a fresh run starts from a quiet server.
func (l *Lab) ClearSessions(ctx context.Context) error {
	sessions, err := l.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		log.Info("No active sessions found.")
		return nil
	}
	log.Infof("Found %d active sessions. Shutting them down...", len(sessions))
	for _, session := range sessions {
		if err := l.DeleteSession(ctx, session.ID); err != nil {
			return err
		}
		if session.Kernel != nil {
			log.Infof("Shut down notebook/console session: %s (ID: %s)", session.Path, session.ID)
		} else {
			log.Infof("Shut down session (ID: %s)", session.ID)
		}
	}
	return nil
}

func (l *Lab) ListKernels(ctx context.Context) ([]Kernel, error) {
	url := fmt.Sprintf("%s/api/kernels", l.cfg.BaseUrl)
	resp, herr := l.connections.HttpClient.Do(l.newRequest(ctx, "GET", url))
	if herr != nil {
		log.Debugf("failed to list kernels: %s", herr)
		return nil, herr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var kernels []Kernel
	if err := json.Unmarshal(body, &kernels); err != nil {
		return nil, err
	}
	return kernels, nil
}

func (l *Lab) KernelIDByName(ctx context.Context, kernelName string) (string, error) {
	kernels, err := l.ListKernels(ctx)
	if err != nil {
		return "", err
	}
	for _, kernel := range kernels {
		if kernel.Name == kernelName {
			return kernel.ID, nil
		}
	}
	log.Warnf("no active kernel found for kernel name: %s", kernelName)
	return "", ErrKernelNotFound
}

func (l *Lab) RestartKernel(ctx context.Context, kernelId string) error {
	url := fmt.Sprintf("%s/api/kernels/%s/restart", l.cfg.BaseUrl, kernelId)
	if herr := l.connections.HttpClient.DoNoResponse(l.newRequest(ctx, "POST", url)); herr != nil {
		log.Debugf("failed to restart kernel %s: %s", kernelId, herr)
		return herr
	}
	log.Infof("Kernel %s restarted successfully.", kernelId)
	return nil
}

func (l *Lab) KernelUsage(ctx context.Context, kernelId string) (*KernelUsage, error) {
	url := fmt.Sprintf("%s/api/metrics/v1/kernel_usage/get_usage/%s", l.cfg.BaseUrl, kernelId)
	resp, herr := l.connections.HttpClient.Do(l.newRequest(ctx, "GET", url))
	if herr != nil {
		log.Debugf("failed to fetch kernel usage for %s: %s", kernelId, herr)
		return nil, herr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var usageResponse kernelUsageResponse
	if err := json.Unmarshal(body, &usageResponse); err != nil {
		return nil, err
	}
	log.Debugf("Kernel usage info: %+v", usageResponse.Content)
	return &usageResponse.Content, nil
}

func (l *Lab) KernelPID(ctx context.Context, kernelId string) (int, error) {
	usage, err := l.KernelUsage(ctx, kernelId)
	if err != nil {
		return 0, err
	}
	return usage.PID, nil
}

func (l *Lab) UploadNotebook(ctx context.Context, notebookPath string) error {
	filename := filepath.Base(notebookPath)
	url := fmt.Sprintf("%s/api/contents/%s", l.cfg.BaseUrl, filename)
	log.Infof("Uploading notebook to %s", url)

	data, err := os.ReadFile(notebookPath)
	if err != nil {
		return err
	}
	var content interface{}
	if err := json.Unmarshal(data, &content); err != nil {
		return err
	}
	payload, err := json.Marshal(uploadPayload{
		Content: content,
		Type:    "notebook",
		Format:  "json",
	})
	if err != nil {
		return err
	}

	req := l.newRequest(ctx, "PUT", url)
	req.Body = io.NopCloser(bytes.NewReader(payload))
	if herr := l.connections.HttpClient.DoNoResponse(req); herr != nil {
		log.Debugf("failed to upload notebook: %s", herr)
		return herr
	}
	log.Infof("Notebook uploaded successfully to %s", url)
	return nil
}

func (l *Lab) DeleteNotebook(ctx context.Context, notebookFilename string) error {
	url := fmt.Sprintf("%s/api/contents/%s", l.cfg.BaseUrl, notebookFilename)
	log.Infof("Deleting notebook at %s", url)
	if herr := l.connections.HttpClient.DoNoResponse(l.newRequest(ctx, "DELETE", url)); herr != nil {
		log.Debugf("failed to delete notebook: %s", herr)
		return herr
	}
	return nil
}

func (l *Lab) NotebookURL(notebookPath string) string {
	return fmt.Sprintf("%s/lab/tree/%s/?token=%s", l.cfg.BaseUrl, filepath.Base(notebookPath), l.cfg.Token)
}
