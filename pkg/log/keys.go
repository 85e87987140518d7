package log

// Field keys shared across the pipeline so log entries aggregate cleanly.
const (
	LoggerNameKey = "logger"
	ComponentKey  = "component"
	ModelNameKey  = "model"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	StageKey      = "stage"

	SamplesKey    = "n_samples"
	FeaturesKey   = "n_features"
	TermsKey      = "n_terms"
	RowsKey       = "n_rows"
	DroppedKey    = "n_dropped"
	DurationMsKey = "duration_ms"

	ColumnKey  = "column"
	PathKey    = "path"
	FormulaKey = "formula"

	AICKey      = "aic"
	RMSEKey     = "rmse"
	LambdaKey   = "lambda"
	PValueKey   = "p_value"
	RSquaredKey = "r_squared"
)

// Operation values for OperationKey.
const (
	OperationLoad      = "load"
	OperationClean     = "clean"
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationPredict   = "predict"
	OperationSelect    = "select"
	OperationEvaluate  = "evaluate"
	OperationRender    = "render"
)

// Phase values for PhaseKey.
const (
	PhaseTraining    = "training"
	PhaseInference   = "inference"
	PhaseDiagnostics = "diagnostics"
)
