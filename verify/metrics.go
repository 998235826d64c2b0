package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
)

var verifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "aws_verify_requests_total",
	Help: "Inbound SigV4 verification outcomes",
}, []string{"outcome"})
