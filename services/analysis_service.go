package services

import (
	"fmt"
	"math/rand"
	"time"
)

// ScanAnalysis is the simulated outcome of analyzing an uploaded scan image.
// No real inference happens here; results are randomly generated the same way
// the product has always demoed the flow.
type ScanAnalysis struct {
	DetectionResult string            `json:"detection_result"`
	Confidence      string            `json:"confidence"`
	Biomarkers      map[string]string `json:"biomarkers"`
	Recommendations []string          `json:"recommendations"`
	Timestamp       time.Time         `json:"timestamp"`
}

var analysisRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// AnalyzeScan produces a pseudo-random analysis: ~30% abnormal, confidence
// between 80 and 100 percent, and three biomarker readings.
func AnalyzeScan() ScanAnalysis {
	detection := "normal"
	if analysisRand.Float64() > 0.7 {
		detection = "abnormal"
	}

	return ScanAnalysis{
		DetectionResult: detection,
		Confidence:      fmt.Sprintf("%.2f%%", analysisRand.Float64()*20+80),
		Biomarkers: map[string]string{
			"p53":  fmt.Sprintf("%.2f", analysisRand.Float64()),
			"ki67": fmt.Sprintf("%.2f", analysisRand.Float64()),
			"her2": fmt.Sprintf("%.2f", analysisRand.Float64()),
		},
		Recommendations: []string{
			"Review results with your doctor",
			"Schedule a follow-up scan in 3 months",
			"Maintain regular screening",
		},
		Timestamp: time.Now(),
	}
}
