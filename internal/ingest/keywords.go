package ingest

// Keyword synonym sets for column discovery, in priority order. Every
// extract arrives with its own naming convention, so each logical field
// carries the spellings observed across upstream exports.
var (
	profileIDKeywords      = []string{"user_id", "userid", "id"}
	monthlyChargeKeywords  = []string{"monthly", "monthly_spend", "monthly_charge", "price", "amount", "fee"}
	subscriptionKeywords   = []string{"subscription", "tier", "plan", "account_type"}
	payingFlagKeywords     = []string{"is_paying", "paying", "ispaid", "customer_type"}
	userIDKeywords         = []string{"user_id", "userid"}
	usageTimeKeywords      = []string{"timestamp", "time", "log_timestamp", "event_time", "datetime"}
	durationKeywords       = []string{"duration", "session_duration", "session_duration_min", "minutes", "length"}
	ticketOpenedKeywords   = []string{"date_opened", "opened", "timestamp", "created", "date"}
	ticketStatusKeywords   = []string{"status", "ticket_status"}
	ticketSeverityKeywords = []string{"severity", "priority", "sev", "priority_level"}
	cancellationKeywords   = []string{"cancel", "cancellation", "cancel_request", "churn"}
	// Deliberately narrower than the historical list: bare "issue" and
	// "flag" false-positive on unrelated columns like "flag_color".
	paymentIssueKeywords  = []string{"payment_issue", "payment_flag", "payment_problem", "payment"}
	lastLoginKeywords     = []string{"last_login", "last_login_date", "last_activity"}
	billingChargeKeywords = []string{"monthly", "monthly_charge", "amount", "price", "fee", "spend", "charge"}
)
