package telemetry

// IncTransactionRecorded increments the ledger success counter for one kind.
// Kinds: "deposit", "withdrawal", "transfer_out", "transfer_in".
func IncTransactionRecorded(kind string) {
	transactionsRecordedTotal.WithLabelValues(kind).Inc()
}

// Increments the declined-operation counter
// Reasons: "validation", "not_found", "insufficient_funds".
func IncOperationDeclined(reason string) {
	operationsDeclinedTotal.WithLabelValues(reason).Inc()
}

// IncEventsPublished increments the event publish success counter.
func IncEventsPublished() {
	eventsPublishedTotal.Inc()
}

// Increments the event failure counter with a bounded reason.
// Reasons: "schema", "kafka", "dropped".
func IncEventsFailed(reason string) {
	eventsFailedTotal.WithLabelValues(reason).Inc()
}

// Sets the current queue size gauge.
func SetWorkerQueueCurrent(n int) {
	workerQueueCurrent.Set(float64(n))
}

// Increments both the created counter and the current total gauge.
func IncCustomersCreated() {
	customersCreatedTotal.Inc()
	customersTotalCurrent.Inc()
}

// Increments the failed-create counter with a bounded reason.
func IncCustomersCreateFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	customersCreateFailedTotal.WithLabelValues(reason).Inc()
}

// Increments the GET counter labeled by whether the customer was found.
func IncCustomersGet(found bool) {
	lbl := "false"
	if found {
		lbl = "true"
	}
	customersGetTotal.WithLabelValues(lbl).Inc()
}
