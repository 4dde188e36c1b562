package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// admissionsTotal breaks booking admissions down by outcome so slot
// contention shows up in dashboards.
var admissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_admissions_total",
		Help: "Booking admission attempts by outcome.",
	},
	[]string{"outcome"},
)

const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
)
