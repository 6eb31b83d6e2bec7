// internal/workers/calculator/generate-calculator-insight/handler.go
package generatecalculatorinsight

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
	"solar-workers/internal/solar/compliance"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	TaskType = "generate-calculator-insight"
)

var inputSchema = validation.MustCompile(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"requestType": {
			Type: "string",
			Enum: []string{compliance.RequestPillarContent, compliance.RequestCalculator, compliance.RequestLocalization},
		},
		"engineCode":   {Type: "string", MaxLength: validation.Int(64)},
		"engineInputs": {Type: "object", Description: "Values handed to the content engine"},
		"closeSession": {Type: "boolean"},
	},
	Required: []string{"engineInputs"},
})

type Handler struct {
	config     *Config
	manager    *compliance.Manager
	sessions   *compliance.Registry
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, manager *compliance.Manager, sessions *compliance.Registry, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		manager:    manager,
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

// Execute generates content with the selected engine and checks it. A failed
// generation is not a job failure: the output reports generated=false. With
// CloseSession the workflow's compliance session is released once the output
// is ready; failed jobs keep it for the retry.
func (h *Handler) Execute(ctx context.Context, instanceKey int64, input *Input) (*Output, error) {
	code, err := h.engineCode(input)
	if err != nil {
		return nil, err
	}

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("engine", code))
	defer span.End()

	session := h.sessions.Get(instanceKey, nil)
	out := &Output{EngineCode: code, SessionID: session.ID()}

	exec, err := h.manager.Execute(ctx, session, code, input.EngineInputs)
	switch {
	case err == nil:
	case stderrors.Is(err, compliance.ErrGenerationFailed):
		span.SetStatus(codes.Error, err.Error())
		stdErr := errors.NewContentGenerationError(code, err)
		h.logger.Error("content generation failed", map[string]interface{}{
			"engine":  code,
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
		out.GenerationError = stdErr.Details
		h.closeSession(instanceKey, input, out)
		return out, nil
	case stderrors.Is(err, compliance.ErrMissingInputs), stderrors.Is(err, compliance.ErrMalformedInputs):
		return nil, errors.NewInvalidInputError("engineInputs", err.Error())
	case stderrors.Is(err, compliance.ErrEngineNotFound):
		return nil, errors.NewEngineNotFoundError(code)
	default:
		return nil, errors.NewInternalError(err)
	}

	metrics.ComplianceChecks.WithLabelValues(string(exec.QA.Status)).Inc()
	span.SetAttributes(attribute.String("status", string(exec.QA.Status)))

	out.Generated = true
	out.Content = exec.Content
	out.EngineUsed = exec.Engine
	out.QAResult = &exec.QA

	h.logger.Info("insight generated", map[string]interface{}{
		"engine":  code,
		"status":  string(exec.QA.Status),
		"auditId": exec.QA.AuditID,
	})
	h.closeSession(instanceKey, input, out)
	return out, nil
}

func (h *Handler) closeSession(instanceKey int64, input *Input, out *Output) {
	if !input.CloseSession {
		return
	}
	if sr, ok := h.sessions.Close(instanceKey); ok {
		out.SessionReport = &sr
	}
}

// engineCode prefers an explicit engine code over the request type. With
// neither, the calculator engine is used.
func (h *Handler) engineCode(input *Input) (string, error) {
	if input.EngineCode != "" {
		if _, err := compliance.LookupEngine(input.EngineCode); err != nil {
			return "", errors.NewEngineNotFoundError(input.EngineCode)
		}
		return input.EngineCode, nil
	}
	requestType := input.RequestType
	if requestType == "" {
		requestType = compliance.RequestCalculator
	}
	eng, err := compliance.SelectEngine(requestType)
	if err != nil {
		return "", errors.NewEngineNotFoundError(requestType)
	}
	return eng.Code, nil
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
