package quote

import "fmt"

// Bucket is the fairness verdict of a quote.
type Bucket int

const (
	BucketUnknown Bucket = iota
	Suspicious
	Fair
	Borderline
	High
)

var bucketNames = map[Bucket]string{
	Suspicious: "suspicious",
	Fair:       "fair",
	Borderline: "borderline",
	High:       "high",
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return "unknown"
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	for k, name := range bucketNames {
		if name == string(text) {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("unknown quote bucket %q", text)
}

// Display is how a verdict is presented to the user.
type Display struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

var displays = map[Bucket]Display{
	Suspicious: {
		Label:   "Suspiciously Low",
		Color:   "#dc2626",
		Icon:    "⚠️",
		Message: "This quote is significantly below typical benchmarks. Check for hidden costs, older panels, or refurbished inverters.",
	},
	Fair: {
		Label:   "Fair Market Price",
		Color:   "#16a34a",
		Icon:    "✅",
		Message: "This generally falls within a fair market range for your city based on official benchmarks.",
	},
	Borderline: {
		Label:   "On the Higher Side",
		Color:   "#d97706",
		Icon:    "🟠",
		Message: "This is slightly higher than average. May be justified by premium components (e.g., Enphase micro-inverters) or complex installation structures.",
	},
	High: {
		Label:   "High Quote",
		Color:   "#dc2626",
		Icon:    "🛑",
		Message: "This quote is significantly higher than market standards. Ask for a detailed cost breakdown or get a second opinion.",
	},
}

// Display returns the presentation config of b. BucketUnknown has none.
func (b Bucket) Display() Display {
	return displays[b]
}
