package observability

// Metric name prefixes
const (
	MetricPrefix = "dahcoins"
)

// Metric names
const (
	// HTTP metrics
	HTTPRequestsTotal   = MetricPrefix + ".http.requests_total"
	HTTPRequestDuration = MetricPrefix + ".http.request_duration"

	// Economy metrics
	CoinsIssuedTotal         = MetricPrefix + ".coins.issued_total"
	EarnBlockedTotal         = MetricPrefix + ".earn.blocked_total"
	BalanceTransactionsTotal = MetricPrefix + ".balance.transactions_total"
	RedemptionsTotal         = MetricPrefix + ".store.redemptions_total"
	StakeTransitionsTotal    = MetricPrefix + ".staking.transitions_total"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"

	// Operation metrics
	OperationsTotal   = MetricPrefix + ".operations.total"
	OperationDuration = MetricPrefix + ".operations.duration"
)

// Label keys
const (
	LabelType      = "type"
	LabelEventType = "event_type"
	LabelReason    = "reason"
	LabelResult    = "result"
	LabelStatus    = "status"

	LabelRoute  = "route"
	LabelMethod = "method"

	LabelOperation = "operation"
	LabelErrorType = "error_type"
)

// Result values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
	ResultReplay  = "replay"
)
