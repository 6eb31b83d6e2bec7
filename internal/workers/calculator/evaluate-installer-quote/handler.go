// internal/workers/calculator/evaluate-installer-quote/handler.go
package evaluateinstallerquote

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
	"solar-workers/internal/solar/quote"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "evaluate-installer-quote"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"systemSizeKW": {Type: []string{"number", "null"}, Description: "Quoted system size in kW"},
		"totalQuote":   {Type: []string{"number", "null"}, Description: "Installer's total price in rupees"},
		"city":         {Type: "string", MaxLength: validation.Int(64)},
	},
})

type Handler struct {
	config     *Config
	evaluator  *quote.Evaluator
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		evaluator:  quote.NewEvaluator(config.Benchmarks, config.Multipliers),
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
	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("city", input.City))
	defer span.End()

	verdict, err := h.evaluator.Evaluate(input.SystemSizeKW, input.TotalQuote, input.City)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if stderrors.Is(err, quote.ErrInvalidInput) {
			field := "totalQuote"
			if !(input.SystemSizeKW > 0) {
				field = "systemSizeKW"
			}
			return nil, errors.NewInvalidInputError(field, err.Error())
		}
		return nil, errors.NewInternalError(err)
	}

	bucket := verdict.Bucket.String()
	metrics.QuoteVerdicts.WithLabelValues(bucket).Inc()
	h.obs.RecordQuoteRatio(ctx, bucket, verdict.Ratio())
	span.SetAttributes(attribute.String("bucket", bucket))

	h.logger.Info("quote evaluated", map[string]interface{}{
		"bucket":    bucket,
		"market":    verdict.Market,
		"userPerKW": verdict.UserPerKW,
		"fairRate":  verdict.FairRate,
	})

	return &Output{
		Bucket:  verdict.Bucket,
		IsFair:  verdict.Bucket == quote.Fair,
		Verdict: verdict,
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
