// internal/workers/calculator/estimate-national-savings/handler.go
package estimatenationalsavings

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
	"solar-workers/internal/solar/national"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "estimate-national-savings"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"monthlyBill":   {Type: []string{"number", "null"}},
		"state":         {Type: "string", MaxLength: validation.Int(64)},
		"city":          {Type: "string", MaxLength: validation.Int(64)},
		"homeType":      {Type: "string", MaxLength: validation.Int(32)},
		"roofOwnership": {Type: "string", MaxLength: validation.Int(32)},
		"roofArea":      {Type: "string", MaxLength: validation.Int(32)},
		"discom":        {Type: "string", MaxLength: validation.Int(128)},
	},
})

type Handler struct {
	config     *Config
	calculator *national.Calculator
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, calculator *national.Calculator, obs *observability.Observability, log logger.Logger) *Handler {
	if calculator == nil {
		calculator = national.NewCalculator(nil)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		calculator: calculator,
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

// Execute estimates savings from state market data. Unlike the tiered
// calculator, an unknown state or city is an error here.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.String("state", input.State),
		attribute.String("city", input.City),
	)
	defer span.End()

	est, err := h.calculator.Estimate(*input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch {
		case stderrors.Is(err, national.ErrUnknownLocation):
			return nil, errors.NewUnknownLocationError(input.State, input.City)
		case stderrors.Is(err, national.ErrInvalidInput):
			return nil, errors.NewInvalidInputError(invalidField(input), err.Error())
		default:
			return nil, errors.NewInternalError(err)
		}
	}

	metrics.RecommendedSystemSize.Observe(est.SystemSizeKW)
	h.obs.RecordCalculation(ctx, "national_market", est.SystemSizeKW)

	h.logger.Info("national estimate calculated", map[string]interface{}{
		"location":     est.Location,
		"systemSizeKW": est.SystemSizeKW,
		"roofLimited":  est.RoofLimited,
		"netCost":      est.NetCost,
	})

	return &Output{
		SystemSizeKW:   est.SystemSizeKW,
		SubsidyApplied: est.TotalSubsidy > 0,
		Estimate:       est,
	}, nil
}

func invalidField(input *Input) string {
	switch {
	case !(input.MonthlyBill > 0):
		return "monthlyBill"
	case input.State == "":
		return "state"
	case input.City == "":
		return "city"
	}
	switch input.HomeType {
	case "", national.HomeIndependent, national.HomeApartment, national.HomeFarmhouse:
		return "roofArea"
	default:
		return "homeType"
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
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}
