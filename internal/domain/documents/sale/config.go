package sale

import "gescom/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for sales.
	// Sales are high-volume; cached ranges trade gapless numbering for
	// throughput.
	NumeratorStrategy = numerator.StrategyCached
)
