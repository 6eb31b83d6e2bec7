// internal/workers/calculator/calculate-solar-savings/handler.go
package calculatesolarsavings

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
	"solar-workers/internal/solar/engine"
	"solar-workers/internal/solar/location"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "calculate-solar-savings"
)

// monthlyBill is not required: a missing bill is reported as INVALID_INPUT
// by the engine rather than as a schema failure.
var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"monthlyBill": {Type: []string{"number", "null"}, Description: "Monthly electricity bill in rupees"},
		"state":       {Type: "string", MaxLength: validation.Int(64)},
		"city":        {Type: "string", MaxLength: validation.Int(64)},
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

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	h.completeJob(ctx, client, job, output, start)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	var input Input
	res, err := inputSchema.Decode(job.Variables, &input)
	if err != nil {
		return nil, errors.NewParseError(err)
	}
	if !res.Valid {
		return nil, errors.NewSchemaValidationError(strings.Join(res.GetErrorMessages(), "; "))
	}
	return &input, nil
}

// Execute resolves the location configuration and runs the savings model.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("state", input.State),
		attribute.String("city", input.City),
	)
	defer span.End()

	if h.config.EnforceBillBounds {
		if err := h.config.BillBounds.Check(input.MonthlyBill); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, mapError(err)
		}
	}

	cfg := h.resolver.Resolve(input.State, input.City)

	result, err := engine.Calculate(engine.Inputs{
		MonthlyBill: input.MonthlyBill,
		State:       input.State,
		City:        input.City,
	}, cfg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, mapError(err)
	}

	rec, err := engine.Recommend(input.MonthlyBill, cfg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, mapError(err)
	}

	kw := result.System.RecommendedKW
	metrics.RecommendedSystemSize.Observe(kw)
	h.obs.RecordCalculation(ctx, string(result.Metadata.LocationLevel), kw)
	span.SetAttributes(attribute.Float64("recommendedKW", kw))

	h.logger.Info("savings calculated", map[string]interface{}{
		"recommendedKW": kw,
		"locationLevel": result.Metadata.LocationLevel,
		"configSource":  result.Metadata.ConfigSource,
		"payback":       result.Financial.PaybackYears.String(),
		"fallback":      cfg.FallbackMessage != "",
	})

	return &Output{
		RecommendedKW:   kw,
		SubsidyEligible: engine.IsSubsidyEligible(kw, cfg),
		LocationLevel:   string(result.Metadata.LocationLevel),
		Savings:         result,
		Recommendation:  rec,
	}, nil
}

func mapError(err error) error {
	switch {
	case stderrors.Is(err, engine.ErrInvalidInput):
		return errors.NewInvalidInputError("monthlyBill", err.Error())
	default:
		return errors.NewInternalError(err)
	}
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
	h.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}
