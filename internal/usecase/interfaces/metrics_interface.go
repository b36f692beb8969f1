package interfaces

import "context"

// IBillingMetrics receives domain events worth counting.
type IBillingMetrics interface {
	RecordProjectSaved(ctx context.Context, operation string, department string)
	RecordReport(ctx context.Context, mode string)
	RecordSettlement(ctx context.Context, status string)
}
