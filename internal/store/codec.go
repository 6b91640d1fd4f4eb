package store

import (
	"encoding/json"

	"acovea/internal/report"
)

// EncodeFinalReport serializes a final report to JSON for blob storage in
// the sqlite backend.
func EncodeFinalReport(final report.FinalReport) ([]byte, error) {
	return json.Marshal(final)
}

// DecodeFinalReport reverses EncodeFinalReport.
func DecodeFinalReport(payload []byte) (report.FinalReport, error) {
	var final report.FinalReport
	if err := json.Unmarshal(payload, &final); err != nil {
		return report.FinalReport{}, err
	}
	return final, nil
}
