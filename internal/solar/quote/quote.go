// Package quote classifies an installer quote against benchmark rates
// adjusted for the local market.
package quote

import (
	"errors"
	"fmt"
	"math"

	"solar-workers/internal/solar/money"
)

var ErrInvalidInput = errors.New("invalid input")

// Benchmarks are the per-kW floor rates by system size band.
type Benchmarks struct {
	UpTo2KW  float64 `json:"upTo2kW"`
	UpTo3KW  float64 `json:"upTo3kW"`
	Above3KW float64 `json:"above3kW"`
}

// DefaultBenchmarks are the MNRE benchmark costs of February 2024.
var DefaultBenchmarks = Benchmarks{UpTo2KW: 50000, UpTo3KW: 45000, Above3KW: 43000}

// DefaultMarket is the multiplier key used for cities without their own entry.
const DefaultMarket = "default"

// DefaultMultipliers adjust the benchmark for installer margins, labour and logistics.
var DefaultMultipliers = map[string]float64{
	"mumbai":      1.35,
	"pune":        1.25,
	"bangalore":   1.25,
	"delhi":       1.25,
	"gujarat":     1.10,
	DefaultMarket: 1.15,
}

const (
	suspiciousFactor = 0.95
	fairLowFactor    = 0.9
	fairHighFactor   = 1.15
	borderlineFactor = 1.25
	scaleHalfWidth   = 0.5
	positionMin      = 5
	positionMax      = 95
)

// Verdict is the outcome of one evaluation.
type Verdict struct {
	Bucket       Bucket     `json:"bucket"`
	Display      Display    `json:"display"`
	SystemSizeKW float64    `json:"systemSizeKW"`
	TotalQuote   float64    `json:"totalQuote"`
	Market       string     `json:"market"`
	Multiplier   float64    `json:"multiplier"`
	BaseRate     float64    `json:"baseRate"`
	FairRate     float64    `json:"fairRate"`
	UserPerKW    float64    `json:"userPerKW"`
	TypicalRange TotalRange `json:"typicalRange"`
	Position     float64    `json:"position"`
}

// TotalRange is the typical market price for the whole system.
type TotalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ratio is the quoted per-kW price relative to the fair market rate.
func (v *Verdict) Ratio() float64 {
	if v.FairRate == 0 {
		return 0
	}
	return v.UserPerKW / v.FairRate
}

// Evaluator holds the benchmark tables. The zero value is not usable; use
// NewEvaluator or Evaluate.
type Evaluator struct {
	benchmarks  Benchmarks
	multipliers map[string]float64
}

func NewEvaluator(b Benchmarks, multipliers map[string]float64) *Evaluator {
	m := make(map[string]float64, len(multipliers)+1)
	for k, v := range multipliers {
		m[k] = v
	}
	if _, ok := m[DefaultMarket]; !ok {
		m[DefaultMarket] = DefaultMultipliers[DefaultMarket]
	}
	return &Evaluator{benchmarks: b, multipliers: m}
}

var defaultEvaluator = NewEvaluator(DefaultBenchmarks, DefaultMultipliers)

// Evaluate classifies a quote with the default tables.
func Evaluate(sizeKW, totalQuote float64, city string) (*Verdict, error) {
	return defaultEvaluator.Evaluate(sizeKW, totalQuote, city)
}

// BaseRate is the benchmark per-kW rate for a system of sizeKW.
func (e *Evaluator) BaseRate(sizeKW float64) float64 {
	switch {
	case sizeKW <= 2:
		return e.benchmarks.UpTo2KW
	case sizeKW <= 3:
		return e.benchmarks.UpTo3KW
	default:
		return e.benchmarks.Above3KW
	}
}

// Multiplier returns the market multiplier for city and the market key used.
// Unknown cities use the default market.
func (e *Evaluator) Multiplier(city string) (float64, string) {
	if m, ok := e.multipliers[city]; ok && city != "" {
		return m, city
	}
	return e.multipliers[DefaultMarket], DefaultMarket
}

// Evaluate classifies a quote. Thresholds are checked in a fixed order and the
// first match wins, so a quote between the suspicious floor and the fair band
// falls through to High.
func (e *Evaluator) Evaluate(sizeKW, totalQuote float64, city string) (*Verdict, error) {
	if !(sizeKW > 0) || math.IsInf(sizeKW, 1) {
		return nil, fmt.Errorf("%w: system size must be positive, got %v", ErrInvalidInput, sizeKW)
	}
	if !(totalQuote > 0) || math.IsInf(totalQuote, 1) {
		return nil, fmt.Errorf("%w: total quote must be positive, got %v", ErrInvalidInput, totalQuote)
	}

	baseRate := e.BaseRate(sizeKW)
	multiplier, market := e.Multiplier(city)
	fairRate := baseRate * multiplier
	userPerKW := totalQuote / sizeKW

	var bucket Bucket
	switch {
	case userPerKW < baseRate*suspiciousFactor:
		bucket = Suspicious
	case userPerKW >= fairRate*fairLowFactor && userPerKW <= fairRate*fairHighFactor:
		bucket = Fair
	case userPerKW > fairRate*fairHighFactor && userPerKW <= fairRate*borderlineFactor:
		bucket = Borderline
	default:
		bucket = High
	}

	return &Verdict{
		Bucket:       bucket,
		Display:      bucket.Display(),
		SystemSizeKW: sizeKW,
		TotalQuote:   totalQuote,
		Market:       market,
		Multiplier:   multiplier,
		BaseRate:     baseRate,
		FairRate:     fairRate,
		UserPerKW:    userPerKW,
		TypicalRange: TotalRange{
			Min: money.Round(fairRate * fairLowFactor * sizeKW),
			Max: money.Round(fairRate * fairHighFactor * sizeKW),
		},
		Position: Position(userPerKW, fairRate),
	}, nil
}

// Position places userPerKW on a scale where 0 is half the fair rate, 50 is
// the fair rate and 100 is one and a half times it. The result is clamped to
// [5, 95].
func Position(userPerKW, fairRate float64) float64 {
	half := fairRate * scaleHalfWidth
	if half == 0 {
		return positionMin
	}
	p := (userPerKW - (fairRate - half)) / (half * 2) * 100
	return math.Max(positionMin, math.Min(positionMax, p))
}
