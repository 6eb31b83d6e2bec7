package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solar-workers/internal/common/logger"
)

var (
	ErrGenerationFailed = errors.New("content generation failed")
	ErrMalformedInputs  = errors.New("malformed engine inputs")
)

// Execution is the result of running one engine.
type Execution struct {
	Content string `json:"content"`
	QA      Report `json:"qa"`
	Engine  string `json:"engine"`
}

// Manager runs an engine's generator, checks the output and records the
// step in the caller's session.
type Manager struct {
	generator Generator
	timeout   time.Duration
	logger    logger.Logger
}

type ManagerOption func(*Manager)

// WithGenerateTimeout bounds each generation. Zero means no bound beyond ctx.
func WithGenerateTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.timeout = d }
}

func NewManager(gen Generator, log logger.Logger, opts ...ManagerOption) *Manager {
	if gen == nil {
		gen = TemplateGenerator{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	m := &Manager{generator: gen, logger: log}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Execute validates values against the engine's requirements, waits for the
// generated content, runs the compliance check within session and records the
// step. Generation errors wrap ErrGenerationFailed; values that cannot be read
// as check inputs wrap ErrMalformedInputs and nothing is generated.
func (m *Manager) Execute(ctx context.Context, session *Session, engineCode string, values map[string]interface{}) (*Execution, error) {
	eng, err := LookupEngine(engineCode)
	if err != nil {
		return nil, err
	}
	if err := eng.Validate(values); err != nil {
		return nil, err
	}

	in, err := InputsFromValues(values)
	if err != nil {
		return nil, err
	}

	content, err := m.generate(ctx, eng, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGenerationFailed, eng.Code, err)
	}

	report := session.Check(ctx, eng.Code, content, in)
	session.RecordStep(eng.Code, in, content, report)

	m.logger.Debug("engine executed", map[string]interface{}{
		"engine":    eng.Code,
		"sessionId": session.ID(),
		"status":    string(report.Status),
	})

	return &Execution{Content: content, QA: report, Engine: eng.Name}, nil
}

type generated struct {
	content string
	err     error
}

func (m *Manager) generate(ctx context.Context, eng Engine, values map[string]interface{}) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	done := make(chan generated, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- generated{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		content, err := m.generator.Generate(ctx, eng, values)
		done <- generated{content: content, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case g := <-done:
		return g.content, g.err
	}
}

// InputsFromValues extracts calculatorOutputs and locationConfig from raw
// process values. Every other value becomes context.
func InputsFromValues(values map[string]interface{}) (Inputs, error) {
	var in Inputs

	if v, ok := values["calculatorOutputs"]; ok && v != nil {
		var outputs CalculatorOutputs
		if err := remarshal(v, &outputs); err != nil {
			return Inputs{}, fmt.Errorf("%w: calculatorOutputs: %w", ErrMalformedInputs, err)
		}
		in.CalculatorOutputs = &outputs
	}
	if v, ok := values["locationConfig"]; ok && v != nil {
		var costs LocationCosts
		if err := remarshal(v, &costs); err != nil {
			return Inputs{}, fmt.Errorf("%w: locationConfig: %w", ErrMalformedInputs, err)
		}
		in.LocationConfig = &costs
	}

	for k, v := range values {
		if k == "calculatorOutputs" || k == "locationConfig" {
			continue
		}
		if in.Context == nil {
			in.Context = make(map[string]interface{})
		}
		in.Context[k] = v
	}
	return in, nil
}

func remarshal(src, dst interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
