package service

import (
	"github.com/nbarsukov/authd/internal/observability/metrics"
)

func incrementRegistrations() {
	metrics.RegistrationsTotal.Inc()
}

func incrementRegistrationConflicts() {
	metrics.RegistrationConflictsTotal.Inc()
}

func incrementLogins() {
	metrics.LoginsTotal.Inc()
}

func incrementLoginFailures(reason string) {
	metrics.LoginFailuresTotal.WithLabelValues(reason).Inc()
}

func incrementTokensIssued() {
	metrics.TokensIssuedTotal.Inc()
}
