package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Calculator metric names
const (
	MetricNameCalculationsTotal   = "craftcalc_calculations_total"
	MetricNameExpansionSteps      = "craftcalc_expansion_steps"
	MetricNameUnknownItemsTotal   = "craftcalc_unknown_items_total"
	MetricNameShoppingListSession = "craftcalc_shopping_list_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Calculator metric help text
const (
	HelpTextCalculationsTotal   = "Total number of top-level calculations by kind and outcome"
	HelpTextExpansionSteps      = "Number of nodes visited per top-level expansion"
	HelpTextUnknownItemsTotal   = "Total number of unknown items treated as raw materials"
	HelpTextShoppingListSession = "Current number of shopping list sessions held in memory"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
)

// Calculation kinds
const (
	KindExpand    = "expand"
	KindAggregate = "aggregate"
)

// Calculation outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeCycle     = "cycle"
	OutcomeUnknown   = "unknown_item"
	OutcomeStepLimit = "step_limit"
	OutcomePartial   = "partial"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ExpansionStepBuckets covers shallow recipes up to catalogs near the default step limit
var ExpansionStepBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 10000}
