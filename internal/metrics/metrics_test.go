package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, PipelineRunsTotal)
	assert.NotNil(t, PipelineDuration)
	assert.NotNil(t, PipelineProgress)
	assert.NotNil(t, EnrichedItemsTotal)
	assert.NotNil(t, MalformedItemsTotal)
	assert.NotNil(t, SubqueryFailuresTotal)
	assert.NotNil(t, MeliAPICallsTotal)
	assert.NotNil(t, MeliDailyUsage)
	assert.NotNil(t, MeliDailyLimitHits)
	assert.NotNil(t, TokenExchangesTotal)
	assert.NotNil(t, SummaryDuration)
	assert.NotNil(t, SummaryFragmentsTotal)
	assert.NotNil(t, NotificationFailuresTotal)
}
