package viomi

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func metricsStatusHandler() func(Request) (any, error) {
	profile := DefaultProfile()
	return func(req Request) (any, error) {
		if req.Method != "get_properties" {
			return []any{"ok"}, nil
		}
		values := make([]any, len(profile.Properties))
		for i := range values {
			values[i] = float64(0)
		}
		values[0] = float64(87) // battary_life
		values[18] = float64(3) // run_state
		return values, nil
	}
}

func TestMetricsCollectorScrape(t *testing.T) {
	transport := &fakeTransport{handler: metricsStatusHandler()}
	collector := NewMetricsCollector(NewSession(transport, Config{}))

	expected := `
# HELP viomi_battery_percent Battery percentage (0-100)
# TYPE viomi_battery_percent gauge
viomi_battery_percent 87
# HELP viomi_charging Whether the vacuum is charging (1=yes, 0=no)
# TYPE viomi_charging gauge
viomi_charging 1
# HELP viomi_scrape_success Last scrape success (1=ok, 0=error)
# TYPE viomi_scrape_success gauge
viomi_scrape_success 1
# HELP viomi_state Vacuum state (label) reported by the device
# TYPE viomi_state gauge
viomi_state{state="cleaning"} 1
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"viomi_battery_percent", "viomi_charging", "viomi_scrape_success", "viomi_state")
	if err != nil {
		t.Fatal(err)
	}
}

func TestMetricsCollectorScrapeFailure(t *testing.T) {
	transport := &fakeTransport{handler: func(Request) (any, error) {
		return nil, fmt.Errorf("device offline")
	}}
	collector := NewMetricsCollector(NewSession(transport, Config{}))

	expected := `
# HELP viomi_scrape_success Last scrape success (1=ok, 0=error)
# TYPE viomi_scrape_success gauge
viomi_scrape_success 0
`
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"viomi_scrape_success", "viomi_battery_percent")
	if err != nil {
		t.Fatal(err)
	}
}
