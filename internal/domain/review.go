package domain

// Confidence of a review verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) String() string { return string(c) }

func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// ReviewVerdict is the outcome of one review cycle. The recommendation is
// kept as the raw descriptor so the store can re-validate it.
type ReviewVerdict struct {
	Recommendation Descriptor
	Confidence     Confidence
	Reasoning      string
}
