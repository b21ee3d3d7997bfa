package viomi

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector exposes one session's device status as Prometheus
// metrics. Each scrape performs a fresh batched status call.
type MetricsCollector struct {
	session *Session

	success prometheus.Gauge

	battery      prometheus.Gauge
	cleanTime    prometheus.Gauge
	cleanArea    prometheus.Gauge
	mapCount     prometheus.Gauge
	charging     prometheus.Gauge
	mopInstalled prometheus.Gauge

	state      *prometheus.GaugeVec
	fanSpeed   *prometheus.GaugeVec
	waterGrade *prometheus.GaugeVec
	mopMode    *prometheus.GaugeVec
	errorCode  *prometheus.GaugeVec
}

func NewMetricsCollector(session *Session) *MetricsCollector {
	return &MetricsCollector{
		session: session,
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_scrape_success",
			Help: "Last scrape success (1=ok, 0=error)",
		}),
		battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_battery_percent",
			Help: "Battery percentage (0-100)",
		}),
		cleanTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_cleaning_time_seconds",
			Help: "Current cleaning time (seconds)",
		}),
		cleanArea: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_cleaning_area_square_meters",
			Help: "Current cleaning area (square meters)",
		}),
		mapCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_map_count",
			Help: "Number of saved maps",
		}),
		charging: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_charging",
			Help: "Whether the vacuum is charging (1=yes, 0=no)",
		}),
		mopInstalled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "viomi_mop_installed",
			Help: "Whether the mop is installed (1=yes, 0=no)",
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomi_state",
			Help: "Vacuum state (label) reported by the device",
		}, []string{"state"}),
		fanSpeed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomi_fan_speed",
			Help: "Fan speed (label)",
		}, []string{"fan_speed"}),
		waterGrade: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomi_water_grade",
			Help: "Water grade (label)",
		}, []string{"water_grade"}),
		mopMode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomi_mop_mode",
			Help: "Cleaning mode (label)",
		}, []string{"mop_mode"}),
		errorCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "viomi_error_code",
			Help: "Device error code (label)",
		}, []string{"error_code"}),
	}
}

func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	c.success.Describe(ch)
	c.battery.Describe(ch)
	c.cleanTime.Describe(ch)
	c.cleanArea.Describe(ch)
	c.mapCount.Describe(ch)
	c.charging.Describe(ch)
	c.mopInstalled.Describe(ch)
	c.state.Describe(ch)
	c.fanSpeed.Describe(ch)
	c.waterGrade.Describe(ch)
	c.mopMode.Describe(ch)
	c.errorCode.Describe(ch)
}

func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := c.session.Status(ctx)
	if err != nil {
		c.success.Set(0)
		c.success.Collect(ch)
		return
	}

	c.success.Set(1)
	c.battery.Set(float64(status.Battery()))
	c.cleanTime.Set(status.CleanTime().Seconds())
	c.cleanArea.Set(status.CleanArea())
	c.mapCount.Set(float64(status.MapCount()))
	c.charging.Set(boolGauge(status.Charging()))
	c.mopInstalled.Set(boolGauge(status.MopInstalled()))

	c.state.Reset()
	c.state.WithLabelValues(status.State().String()).Set(1)
	c.fanSpeed.Reset()
	c.fanSpeed.WithLabelValues(status.FanSpeed().String()).Set(1)
	c.waterGrade.Reset()
	c.waterGrade.WithLabelValues(status.WaterGrade().String()).Set(1)
	c.mopMode.Reset()
	c.mopMode.WithLabelValues(status.MopMode().String()).Set(1)
	c.errorCode.Reset()
	if code := status.ErrorCode(); code >= 0 {
		c.errorCode.WithLabelValues(strconv.Itoa(code)).Set(1)
	}

	c.success.Collect(ch)
	c.battery.Collect(ch)
	c.cleanTime.Collect(ch)
	c.cleanArea.Collect(ch)
	c.mapCount.Collect(ch)
	c.charging.Collect(ch)
	c.mopInstalled.Collect(ch)
	c.state.Collect(ch)
	c.fanSpeed.Collect(ch)
	c.waterGrade.Collect(ch)
	c.mopMode.Collect(ch)
	c.errorCode.Collect(ch)
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
