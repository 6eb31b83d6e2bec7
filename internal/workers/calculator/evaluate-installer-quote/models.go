// internal/workers/calculator/evaluate-installer-quote/models.go
package evaluateinstallerquote

import "solar-workers/internal/solar/quote"

type Input struct {
	SystemSizeKW float64 `json:"systemSizeKW"`
	TotalQuote   float64 `json:"totalQuote"`
	City         string  `json:"city,omitempty"`
}

type Output struct {
	Bucket  quote.Bucket   `json:"bucket"`
	IsFair  bool           `json:"isFair"`
	Verdict *quote.Verdict `json:"quoteVerdict"`
}
