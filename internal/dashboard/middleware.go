package dashboard

import (
	"net/http"
	"time"

	"k8s.io/klog/v2"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		logger := klog.Background().WithValues("method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(rec, r.WithContext(klog.NewContext(r.Context(), logger)))

		logger.V(1).Info("http request", "status", rec.status, "duration", time.Since(start))
	})
}
