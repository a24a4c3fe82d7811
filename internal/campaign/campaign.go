package campaign

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vizlab-ci/nbprofiler/internal/config"
	"github.com/vizlab-ci/nbprofiler/internal/db"
	"github.com/vizlab-ci/nbprofiler/internal/generator"
	"github.com/vizlab-ci/nbprofiler/internal/jupyter"
	"github.com/vizlab-ci/nbprofiler/internal/params"
	"github.com/vizlab-ci/nbprofiler/internal/profiler"
	"github.com/vizlab-ci/nbprofiler/internal/report"
)

// Runner expands the parameter grid into notebook files and profiles them
// one by one against a live JupyterLab instance. Generation is concurrent,
// profiling is strictly sequential.
type Runner struct {
	cfg        *config.Config
	jupyterCfg *jupyter.Config
	client     jupyter.Client
	profiler   *profiler.NotebookProfiler
	writer     *report.Writer
	database   db.Database
	store      *Store
}

func NewRunner(
	cfg *config.Config,
	jupyterCfg *jupyter.Config,
	client jupyter.Client,
	prof *profiler.NotebookProfiler,
	writer *report.Writer,
	database db.Database,
	store *Store,
) *Runner {
	return &Runner{
		cfg:        cfg,
		jupyterCfg: jupyterCfg,
		client:     client,
		profiler:   prof,
		writer:     writer,
		database:   database,
		store:      store,
	}
}

// Run executes one full campaign and returns its id. A notebook that
// fails to profile is logged and skipped; the campaign always moves on to
// the next one.
func (r *Runner) Run(ctx context.Context) (string, error) {
	grid, err := params.LoadGrid(r.cfg.GridPath)
	if err != nil {
		return "", err
	}
	assignments := params.Expand(grid)
	log.Infof("Expanded parameter grid into %d assignments.", len(assignments))

	paths, err := r.generateNotebooks(ctx, assignments)
	if err != nil {
		return "", err
	}

	campaignId := uuid.NewString()
	_, err = r.database.Campaigns().CreateCampaign(ctx, &db.Campaign{
		Id:           campaignId,
		TemplatePath: r.cfg.TemplatePath,
		ParamsPath:   r.cfg.GridPath,
	})
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		log.Infof("Profiling notebook: %s", path)
		if err := r.profileNotebook(ctx, campaignId, path); err != nil {
			log.Errorf("An exception occurred while profiling %s: %s", path, err)
		}
	}
	return campaignId, nil
}

func (r *Runner) generateNotebooks(ctx context.Context, assignments []params.Assignment) ([]string, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, err
	}

	gen := generator.New(r.cfg.TemplatePath)
	base := strings.TrimSuffix(filepath.Base(r.cfg.TemplatePath), filepath.Ext(r.cfg.TemplatePath))

	paths := make([]string, len(assignments))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.GenerateWorkers)
	for i, assignment := range assignments {
		i, assignment := i, assignment
		paths[i] = generator.OutputPath(r.cfg.OutputDir, base, assignment)
		group.Go(func() error {
			return gen.GenerateAndSave(assignment, paths[i])
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Infof("Generated %d notebooks in %s.", len(paths), r.cfg.OutputDir)
	return paths, nil
}

func (r *Runner) profileNotebook(ctx context.Context, campaignId string, path string) error {
	if err := r.client.ClearSessions(ctx); err != nil {
		return err
	}
	kernelId, err := r.client.KernelIDByName(ctx, r.jupyterCfg.KernelName)
	if err != nil {
		return err
	}
	if err := r.client.RestartKernel(ctx, kernelId); err != nil {
		return err
	}
	if err := r.client.UploadNotebook(ctx, path); err != nil {
		return err
	}
	defer func() {
		if err := r.client.DeleteNotebook(ctx, filepath.Base(path)); err != nil {
			log.Errorf("failed to delete uploaded notebook %s: %s", filepath.Base(path), err)
		}
	}()

	metrics, err := r.profiler.Run(ctx, path, r.jupyterCfg.KernelName)
	if err != nil {
		return err
	}

	result := &report.Result{
		NotebookPath: path,
		Params:       r.profiler.Params,
		Notebook:     metrics,
		Cells:        r.profiler.CellResults,
	}
	if _, err := r.writer.Save(result); err != nil {
		log.Errorf("An exception occurred during metrics saving: %s", err)
	}
	if err := r.store.SaveResult(ctx, campaignId, result); err != nil {
		log.Errorf("An exception occurred during metrics persisting: %s", err)
	}
	return nil
}
