package rankmicroniches

import (
	"context"
	"fmt"
	"time"

	"niche-workers/internal/common/camunda"
	"niche-workers/internal/common/config"
	"niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/metrics"
	"niche-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "rank-micro-niches"

type Handler struct {
	config        *Config
	logger        logger.Logger
	camunda       *camunda.Client
	service       *Service
	errorHandler  *errors.ErrorHandler
	observability *observability.Observability
	jobWorker     worker.JobWorker
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Camunda      *camunda.Client
	CustomConfig *Config
	Logger       logger.Logger
	Dependencies ServiceDependencies
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Dependencies.Catalog == nil {
		return nil, fmt.Errorf("invalid configuration for %s: catalog source is required", TaskType)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured(logger.Options{Level: "info", Format: "json"})
	}
	loggerInstance = loggerInstance.WithFields(map[string]interface{}{"taskType": TaskType})

	deps := opts.Dependencies
	deps.Logger = loggerInstance

	return &Handler{
		config:        workerConfig,
		logger:        loggerInstance,
		camunda:       opts.Camunda,
		service:       NewService(deps, workerConfig),
		errorHandler:  errors.NewErrorHandler(loggerInstance),
		observability: deps.Observability,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"retries":            job.GetRetries(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.observability.RecordJobProcessed(ctx, TaskType, "completed")
	h.observability.RecordJobDuration(ctx, TaskType, time.Since(startTime), "completed")
}

// Execute runs the ranking without a job, for direct callers and tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewParseError(err)
	}

	result, err := inputSchema.Validate(variables)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidProfileError(result.Summary())
	}

	input := &Input{
		InterestsText:    variables["interestsText"].(string),
		TimeAvailability: variables["timeAvailability"].(string),
		MonetizationGoal: variables["monetizationGoal"].(string),
	}
	if n, ok := variables["topN"].(float64); ok {
		topN := int(n)
		input.TopN = &topN
	}

	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := request.Send(ctx); err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	h.logger.Info("Job completed", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"analysisId": output.AnalysisID,
		"ranked":     len(output.RankedNiches),
		"cached":     output.Cached,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	bpmnErr := h.errorHandler.HandleJobError(ctx, client, job, err)

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()
	h.observability.RecordJobProcessed(ctx, TaskType, "failed")
	h.observability.RecordJobDuration(ctx, TaskType, time.Since(startTime), "failed")
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", nil)
		return nil
	}
	if h.camunda == nil {
		return fmt.Errorf("%s: camunda client is not configured", TaskType)
	}

	h.jobWorker = h.camunda.GetClient().NewJobWorker().
		JobType(TaskType).
		Handler(h.Handle).
		MaxJobsActive(h.config.MaxJobsActive).
		Timeout(h.config.Timeout).
		Name(fmt.Sprintf("%s-worker", TaskType)).
		FetchVariables(inputVariables...).
		Open()

	h.logger.Info("Worker registered with Camunda", map[string]interface{}{
		"maxJobsActive": h.config.MaxJobsActive,
		"timeout":       h.config.Timeout.String(),
		"defaultTopN":   h.config.DefaultTopN,
	})
	return nil
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.logger.Info("Shutting down worker gracefully", nil)
		h.jobWorker.Close()
		h.jobWorker = nil
	}
}

func (h *Handler) HealthCheck(ctx context.Context) error {
	if h.camunda == nil {
		return nil
	}
	if err := h.camunda.HealthCheck(ctx); err != nil {
		return fmt.Errorf("camunda health check failed: %w", err)
	}
	return nil
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	cfg.DefaultTopN = appConfig.Scoring.DefaultTopN
	if workerCfg, exists := appConfig.Workers[TaskType]; exists {
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}
	}
	return cfg
}
