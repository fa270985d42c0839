package models

// QAResult is produced per question and superseded by the next one.
type QAResult struct {
	ID            string `json:"id"`
	Context       string `json:"context"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	StartIndex    int    `json:"start_index"`
	EndIndex      int    `json:"end_index"`
	LowConfidence bool   `json:"low_confidence"`
}
