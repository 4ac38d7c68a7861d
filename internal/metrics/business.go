package metrics

import "time"

// IncrementSubmission increments the submission counter for an outcome
// (accepted, already_found, invalid_code, invalid_input, unknown_participant,
// recording_failed).
func (m *Metrics) IncrementSubmission(result string) {
	m.safeExecute("IncrementSubmission", func() {
		m.SubmissionsTotal.WithLabelValues(result).Inc()
	})
}

// IncrementParticipantRegistered increments the registration counter
func (m *Metrics) IncrementParticipantRegistered() {
	m.safeExecute("IncrementParticipantRegistered", func() {
		m.ParticipantsRegisteredTotal.Inc()
	})
}

// IncrementChangeEventPublished increments the per-table event counter
func (m *Metrics) IncrementChangeEventPublished(table string) {
	m.safeExecute("IncrementChangeEventPublished", func() {
		m.ChangeEventsPublishedTotal.WithLabelValues(table).Inc()
	})
}

// FeedConnectionOpened increments the live-feed connection gauge
func (m *Metrics) FeedConnectionOpened() {
	m.safeExecute("FeedConnectionOpened", func() {
		m.FeedConnections.Inc()
	})
}

// FeedConnectionClosed decrements the live-feed connection gauge
func (m *Metrics) FeedConnectionClosed() {
	m.safeExecute("FeedConnectionClosed", func() {
		m.FeedConnections.Dec()
	})
}

// RecordDBQuery records database query metrics. Implements the
// database.MetricsRecorder callback interface.
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
