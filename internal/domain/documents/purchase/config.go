package purchase

import "gescom/internal/core/numerator"

const (
	// NumeratorStrategy defines the numbering strategy for purchases.
	// Primary accounting document, so numbers must be gapless: Strict.
	NumeratorStrategy = numerator.StrategyStrict
)
