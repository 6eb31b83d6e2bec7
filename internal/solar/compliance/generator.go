package compliance

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces content for an engine. Implementations may block.
type Generator interface {
	Generate(ctx context.Context, e Engine, values map[string]interface{}) (string, error)
}

type GeneratorFunc func(ctx context.Context, e Engine, values map[string]interface{}) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, e Engine, values map[string]interface{}) (string, error) {
	return f(ctx, e, values)
}

// TemplateGenerator renders fixed explanation templates per engine.
type TemplateGenerator struct{}

func (TemplateGenerator) Generate(ctx context.Context, e Engine, values map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch e.Code {
	case EnginePillarContent:
		return strings.Join([]string{
			`<div class="pillar-content">`,
			`<h2>Understanding Solar Costs in India</h2>`,
			`<p>Solar installation costs in India vary significantly based on multiple factors including location, system size, and installation complexity.</p>`,
			`<ul>`,
			`<li>Cost ranges typically fall between ₹45,000-85,000 per kW</li>`,
			`<li>Central subsidies are available for systems up to 3kW</li>`,
			`<li>State policies can significantly impact final costs</li>`,
			`</ul>`,
			`<p class="limitation">These are broad estimates - actual costs depend on site-specific factors.</p>`,
			`</div>`,
		}, "\n"), nil

	case EngineCalculator:
		kw := "3"
		if outputs, ok := values["calculatorOutputs"].(map[string]interface{}); ok {
			if system, ok := outputs["system"].(map[string]interface{}); ok {
				if v, ok := system["recommendedKW"]; ok && v != nil {
					kw = fmt.Sprint(v)
				}
			}
		}
		return strings.Join([]string{
			`<div class="calculator-explanation">`,
			fmt.Sprintf(`<p>Based on your inputs, the system estimates a %s kW installation.</p>`, kw),
			`<p><strong>Assumption:</strong> This calculation assumes average sunshine hours and standard installation conditions.</p>`,
			`<p><strong>Limitation:</strong> Actual generation may vary based on your roof orientation and local weather.</p>`,
			`<p><strong>Next step:</strong> Select your specific state for more accurate pricing.</p>`,
			`</div>`,
		}, "\n"), nil

	case EngineLocalization:
		name, comparison, drivers := "this location", "lower", "local market conditions"
		if cfg, ok := values["locationConfig"].(map[string]interface{}); ok {
			if v, ok := cfg["displayName"].(string); ok && v != "" {
				name = v
			}
			if v, ok := cfg["costAboveNational"].(bool); ok && v {
				comparison = "higher"
			}
			if v, ok := cfg["costDrivers"].(string); ok && v != "" {
				drivers = v
			}
		}
		place := "this city"
		if values["locationType"] == "state" {
			place = "this state"
		}
		return strings.Join([]string{
			`<div class="localized-content">`,
			fmt.Sprintf(`<h3>Solar Costs in %s</h3>`, name),
			fmt.Sprintf(`<p>Compared to national averages, %s shows %s installation costs.</p>`, place, comparison),
			fmt.Sprintf(`<p>This is primarily due to %s.</p>`, drivers),
			`<p>For precise calculations, use the calculator with your specific details.</p>`,
			`</div>`,
		}, "\n"), nil
	}

	return "<p>Content generated successfully.</p>", nil
}
