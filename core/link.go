package core

// LinkResult captures one (source, receiver) propagation computation. It is
// a value object: produced once per evaluation and never mutated.
type LinkResult struct {
	DistanceM        float64 `json:"DistanceM"`
	PathLossDB       float64 `json:"PathLossDB"`
	ReceivedPowerDBm float64 `json:"ReceivedPowerDBm"`
}

// JammingEffectiveness is a coarse, human-readable classification of how far
// the J/S ratio sits relative to the threshold. It is a presentation aid
// only; the boolean verdict in JSVerdict is authoritative.
type JammingEffectiveness string

const (
	EffectivenessNone         JammingEffectiveness = "none"
	EffectivenessMarginal     JammingEffectiveness = "marginal"
	EffectivenessEffective    JammingEffectiveness = "effective"
	EffectivenessOverwhelming JammingEffectiveness = "overwhelming"
)

// JSVerdict is the outcome of comparing a J/S ratio against a threshold.
type JSVerdict struct {
	JSRatioDB         float64 `json:"JSRatioDB"`
	ThresholdDB       float64 `json:"ThresholdDB"`
	MarginDB          float64 `json:"MarginDB"`
	JammingSuccessful bool    `json:"JammingSuccessful"`
}

// EvaluateJS derives the Jammer-to-Signal ratio from the two received power
// levels and classifies it against the threshold. In the dBm domain the
// ratio is a plain subtraction, so a zero-power signal cannot occur here;
// jamming succeeds when the ratio meets or exceeds the threshold.
func EvaluateJS(signalDBm, jammingDBm, thresholdDB float64) JSVerdict {
	ratio := jammingDBm - signalDBm
	return JSVerdict{
		JSRatioDB:         ratio,
		ThresholdDB:       thresholdDB,
		MarginDB:          ratio - thresholdDB,
		JammingSuccessful: ratio >= thresholdDB,
	}
}

// classifyEffectiveness buckets the margin above threshold. Thresholds are
// intentionally soft and for reporting only.
func classifyEffectiveness(v JSVerdict) JammingEffectiveness {
	switch {
	case !v.JammingSuccessful:
		return EffectivenessNone
	case v.MarginDB < 3:
		return EffectivenessMarginal
	case v.MarginDB < 10:
		return EffectivenessEffective
	default:
		return EffectivenessOverwhelming
	}
}
