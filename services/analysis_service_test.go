package services

import (
	"strconv"
	"strings"
	"testing"
)

func TestAnalyzeScanOutputContract(t *testing.T) {
	for i := 0; i < 100; i++ {
		result := AnalyzeScan()

		if result.DetectionResult != "normal" && result.DetectionResult != "abnormal" {
			t.Fatalf("unexpected detection result %q", result.DetectionResult)
		}

		if !strings.HasSuffix(result.Confidence, "%") {
			t.Fatalf("confidence %q should be a percentage", result.Confidence)
		}
		value, err := strconv.ParseFloat(strings.TrimSuffix(result.Confidence, "%"), 64)
		if err != nil {
			t.Fatalf("confidence %q is not numeric: %v", result.Confidence, err)
		}
		if value < 80 || value > 100 {
			t.Fatalf("confidence %v outside the 80-100 band", value)
		}

		for _, marker := range []string{"p53", "ki67", "her2"} {
			if _, ok := result.Biomarkers[marker]; !ok {
				t.Fatalf("missing biomarker %s", marker)
			}
		}
		if len(result.Recommendations) == 0 {
			t.Fatalf("expected recommendations")
		}
		if result.Timestamp.IsZero() {
			t.Fatalf("expected a timestamp")
		}
	}
}
