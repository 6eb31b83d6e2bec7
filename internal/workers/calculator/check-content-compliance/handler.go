// internal/workers/calculator/check-content-compliance/handler.go
package checkcontentcompliance

import (
	"context"
	"strings"
	"time"

	"solar-workers/internal/common/errors"
	"solar-workers/internal/common/logger"
	"solar-workers/internal/common/metrics"
	"solar-workers/internal/common/observability"
	"solar-workers/internal/common/validation"
	"solar-workers/internal/solar/compliance"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "check-content-compliance"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"content":           {Type: "string", Description: "Generated content to check"},
		"engineUsed":        {Type: "string", MaxLength: validation.Int(64)},
		"calculatorOutputs": {Type: []string{"object", "null"}},
		"locationConfig":    {Type: []string{"object", "null"}},
		"sessionContext":    {Type: []string{"object", "null"}},
		"closeSession":      {Type: "boolean"},
	},
	Required: []string{"content"},
})

type Handler struct {
	config     *Config
	sessions   *compliance.Registry
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

// NewHandler shares sessions with other compliance workers of the same process.
func NewHandler(config *Config, sessions *compliance.Registry, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		sessions:   sessions,
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

	output, err := h.Execute(ctx, job.ProcessInstanceKey, &input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return
	}

	h.completeJob(ctx, client, job, output, start)
}

// Execute checks content within the session of the workflow instance.
func (h *Handler) Execute(ctx context.Context, instanceKey int64, input *Input) (*Output, error) {
	engineCode := input.EngineUsed
	if engineCode == "" {
		engineCode = compliance.EngineQAGuard
	}
	if _, err := compliance.LookupEngine(engineCode); err != nil {
		return nil, errors.NewEngineNotFoundError(engineCode)
	}

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("engine", engineCode))
	defer span.End()

	session := h.sessions.Get(instanceKey, input.SessionContext)
	report := session.Check(ctx, engineCode, input.Content, compliance.Inputs{
		CalculatorOutputs: input.CalculatorOutputs,
		LocationConfig:    input.LocationConfig,
		Context:           input.SessionContext,
	})

	metrics.ComplianceChecks.WithLabelValues(string(report.Status)).Inc()
	span.SetAttributes(
		attribute.String("status", string(report.Status)),
		attribute.Int("violations", len(report.Violations)),
	)

	out := &Output{
		QAResult:         report,
		CompliancePassed: report.Passed(),
		SessionID:        session.ID(),
	}

	if input.CloseSession {
		if sr, ok := h.sessions.Close(instanceKey); ok {
			out.SessionReport = &sr
		}
	}

	if !report.Passed() {
		h.logger.Warn("content failed compliance", map[string]interface{}{
			"auditId":    report.AuditID,
			"violations": report.Violations,
		})
	}
	return out, nil
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
