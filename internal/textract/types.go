package textract

// JobStatus is the lifecycle state of an expense-analysis job as seen by callers.
// Values outside the known set map to Unknown rather than failing result handling.
type JobStatus string

const (
	JobStatusNotStarted JobStatus = "NOT_STARTED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusSucceeded  JobStatus = "SUCCEEDED"
	JobStatusFailed     JobStatus = "FAILED"
	JobStatusUnknown    JobStatus = "UNKNOWN"
)

// Terminal reports whether polling can stop for this status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed
}

// ParseJobStatus maps a raw status string from the analysis service onto the
// canonical enum. PARTIAL_SUCCESS still carries documents, so it counts as succeeded.
func ParseJobStatus(raw string) JobStatus {
	switch raw {
	case "NOT_STARTED":
		return JobStatusNotStarted
	case "IN_PROGRESS":
		return JobStatusInProgress
	case "SUCCEEDED", "PARTIAL_SUCCESS":
		return JobStatusSucceeded
	case "FAILED":
		return JobStatusFailed
	default:
		return JobStatusUnknown
	}
}

// Field is one typed key/value detection: a free-text type label, the detected
// value text, and the detection confidence for the value.
type Field struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float32 `json:"confidence"`
}

// LineItem is one detected row inside a line-item group.
type LineItem struct {
	Fields []Field `json:"fields"`
}

// LineItemGroup is a cluster of line items detected together (one table).
type LineItemGroup struct {
	Index int32      `json:"index"`
	Items []LineItem `json:"items"`
}

// ExpenseDocument is one logical invoice/receipt segmented by the analysis service.
type ExpenseDocument struct {
	SummaryFields  []Field         `json:"summary_fields"`
	LineItemGroups []LineItemGroup `json:"line_item_groups"`
}

// Warning is a non-fatal notice attached to a result page or an aggregated result.
type Warning struct {
	ErrorCode string  `json:"error_code"`
	Pages     []int32 `json:"pages,omitempty"`
}

// ResultPage is one page of expense-analysis results.
type ResultPage struct {
	Status       JobStatus
	Documents    []ExpenseDocument
	NextToken    string
	Warnings     []Warning
	PageCount    int32
	ModelVersion string
}

// JobResult is the aggregation of every fetched page for one job.
type JobResult struct {
	Status       JobStatus
	Documents    []ExpenseDocument
	Warnings     []Warning
	PageCount    int32
	ModelVersion string
}
