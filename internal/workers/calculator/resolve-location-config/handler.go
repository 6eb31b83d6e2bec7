// internal/workers/calculator/resolve-location-config/handler.go
package resolvelocationconfig

import (
	"context"
	"strings"
	"time"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/common/metrics"
	"solar-workers/internal/common/observability"
	"solar-workers/internal/common/validation"
	"solar-workers/internal/solar/location"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "resolve-location-config"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"state":            {Type: "string", MaxLength: validation.Int(64)},
		"city":             {Type: "string", MaxLength: validation.Int(64)},
		"includeLocations": {Type: "boolean"},
	},
})

type Handler struct {
	config     *Config
	resolver   *location.Resolver
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, resolver *location.Resolver, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		resolver:   resolver,
		obs:        obs,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	res, err := inputSchema.Decode(job.Variables, &input)
	if err != nil {
		h.failJob(ctx, client, job, errors.NewParseError(err), start)
		return
	}
	if !res.Valid {
		h.failJob(ctx, client, job, errors.NewSchemaValidationError(strings.Join(res.GetErrorMessages(), "; ")), start)
		return
	}

	output := h.Execute(ctx, &input)
	h.completeJob(ctx, client, job, output, start)
}

// Execute never fails: unknown locations resolve to a coarser tier.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	_, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("state", input.State),
		attribute.String("city", input.City),
	)
	defer span.End()

	cfg := h.resolver.Resolve(input.State, input.City)
	out := &Output{
		LocationConfig: cfg,
		LocationLevel:  string(location.Level(input.State, input.City)),
		ConfigSource:   location.Source(input.State, input.City),
		UsedFallback:   cfg.FallbackMessage != "",
	}

	if input.IncludeLocations {
		out.States = h.resolver.States()
		if input.State != "" {
			out.Cities = h.resolver.CitiesForState(input.State)
		}
	}

	h.logger.Debug("location resolved", map[string]interface{}{
		"locationLevel": out.LocationLevel,
		"usedFallback":  out.UsedFallback,
	})
	return out
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, start time.Time) {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete command", map[string]interface{}{"error": err})
		h.failJob(ctx, client, job, errors.NewInternalError(err), start)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete command", map[string]interface{}{"error": err})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}
