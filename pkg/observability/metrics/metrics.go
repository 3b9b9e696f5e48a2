package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	predictionsTotal   atomic.Int64
	predictionsAtRisk  atomic.Int64
	predictionFailures atomic.Int64
	historyAppends     atomic.Int64
	historyDeletes     atomic.Int64
)

func RecordPrediction(riskLevel string) {
	predictionsTotal.Add(1)
	switch riskLevel {
	case "at_risk", "high":
		predictionsAtRisk.Add(1)
	}
}

func RecordFailure() {
	predictionFailures.Add(1)
}

func RecordHistoryAppend() {
	historyAppends.Add(1)
}

func RecordHistoryDelete() {
	historyDeletes.Add(1)
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP riskscore_predictions_total Number of completed scoring requests.\n")
	fmt.Fprintf(w, "# TYPE riskscore_predictions_total counter\n")
	fmt.Fprintf(w, "riskscore_predictions_total %d\n", predictionsTotal.Load())

	fmt.Fprintf(w, "# HELP riskscore_predictions_at_risk_total Number of predictions bucketed at_risk or high.\n")
	fmt.Fprintf(w, "# TYPE riskscore_predictions_at_risk_total counter\n")
	fmt.Fprintf(w, "riskscore_predictions_at_risk_total %d\n", predictionsAtRisk.Load())

	fmt.Fprintf(w, "# HELP riskscore_prediction_failures_total Number of scoring requests aborted by artifact errors.\n")
	fmt.Fprintf(w, "# TYPE riskscore_prediction_failures_total counter\n")
	fmt.Fprintf(w, "riskscore_prediction_failures_total %d\n", predictionFailures.Load())

	fmt.Fprintf(w, "# HELP riskscore_history_appends_total Number of history rows written.\n")
	fmt.Fprintf(w, "# TYPE riskscore_history_appends_total counter\n")
	fmt.Fprintf(w, "riskscore_history_appends_total %d\n", historyAppends.Load())

	fmt.Fprintf(w, "# HELP riskscore_history_deletes_total Number of history rows removed.\n")
	fmt.Fprintf(w, "# TYPE riskscore_history_deletes_total counter\n")
	fmt.Fprintf(w, "riskscore_history_deletes_total %d\n", historyDeletes.Load())
}
