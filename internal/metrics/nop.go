// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/speters9/JobMatch/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordSolveDuration discards the sample.
func (n *NopMetrics) RecordSolveDuration(_ /* strategy */ string, _ /* seconds */ float64) {}

// RecordSolveOutcome discards the sample.
func (n *NopMetrics) RecordSolveOutcome(_ /* strategy */ string, _ /* outcome */ string) {}

// RecordObjective discards the sample.
func (n *NopMetrics) RecordObjective(_ /* strategy */ string, _ /* value */ float64) {}

// RecordUnassignedSections discards the sample.
func (n *NopMetrics) RecordUnassignedSections(_ /* strategy */ string, _ /* count */ int) {}

// RecordProposalRounds discards the sample.
func (n *NopMetrics) RecordProposalRounds(_ /* rounds */ int) {}

// RecordGenerations discards the sample.
func (n *NopMetrics) RecordGenerations(_ /* generations */ int) {}

// RecordBranchNodes discards the sample.
func (n *NopMetrics) RecordBranchNodes(_ /* nodes */ int) {}
