package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"noteagent/internal/config"
	"noteagent/internal/metrics"
	"noteagent/pkg/logging"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logging.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Middleware carries the request-independent state the chain needs. An empty
// auth token disables authentication, loudly.
type Middleware struct {
	authToken string
	limiter   *IPRateLimiter
	logger    *logging.Logger
}

func New(authToken string) *Middleware {
	return &Middleware{
		authToken: authToken,
		limiter:   NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND),
		logger:    logging.NewLogger("middleware"),
	}
}

// Wrap runs trace injection, authentication and rate limiting before the
// handler, and records request metrics after it.
func (m *Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200}
		re := m.processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			m.handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func (m *Middleware) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = m.logger

	re = m.injectTrace(re)
	re = m.authenticate(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = m.rateLimit(re)
	return re
}
