// internal/workers/calculator/check-apartment-feasibility/handler.go
package checkapartmentfeasibility

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/common/metrics"
	"solar-workers/internal/common/observability"
	"solar-workers/internal/common/validation"
	"solar-workers/internal/solar/apartment"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "check-apartment-feasibility"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"state":         {Type: "string", MaxLength: validation.Int(64)},
		"rooftopAccess": {Type: "string", MaxLength: validation.Int(16)},
	},
})

type Handler struct {
	config     *Config
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
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

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	h.completeJob(ctx, client, job, output, start)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	_, span := h.obs.StartSpan(ctx, TaskType, attribute.String("state", input.State))
	defer span.End()

	verdict, err := apartment.Check(input.State, input.RooftopAccess)
	if err != nil {
		if stderrors.Is(err, apartment.ErrInvalidInput) {
			field := "rooftopAccess"
			if input.State == "" {
				field = "state"
			}
			return nil, errors.NewInvalidInputError(field, err.Error())
		}
		return nil, errors.NewInternalError(err)
	}

	// Apartments need some roof share and a state that allows shared metering.
	feasible := input.RooftopAccess != apartment.AccessNone &&
		(verdict.Status == apartment.StatusSupported || verdict.Status == apartment.StatusLimited)

	h.logger.Info("apartment feasibility checked", map[string]interface{}{
		"state":       input.State,
		"status":      string(verdict.Status),
		"usedDefault": verdict.UsedDefault,
		"feasible":    feasible,
	})

	return &Output{
		Feasible:   feasible,
		Verdict:    verdict,
		LocalRules: apartment.LocalRules(input.State),
	}, nil
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
