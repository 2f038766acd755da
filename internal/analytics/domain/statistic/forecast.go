package statistic

import "strconv"

const (
	// DefaultForecastHorizon is the number of points appended by a forecast.
	DefaultForecastHorizon = 6
	// DefaultForecastWindow is the trailing window averaged for each point.
	DefaultForecastWindow = 3
)

// Forecast extends series by horizon points using a recursive trailing moving average.
// Each point is the mean of the last window values of the working sequence (history
// followed by earlier forecast points), rounded to one decimal.
func Forecast(series []float64, horizon, window int) []float64 {
	if len(series) == 0 || horizon <= 0 {
		return []float64{}
	}
	if window < 1 {
		window = 1
	}
	working := make([]float64, len(series), len(series)+horizon)
	copy(working, series)
	points := make([]float64, 0, horizon)
	for i := 0; i < horizon; i++ {
		start := len(working) - window
		if start < 0 {
			start = 0
		}
		tail := working[start:]
		var sum float64
		for _, value := range tail {
			sum += value
		}
		next := RoundHalfUp(sum/float64(len(tail)), 1)
		points = append(points, next)
		working = append(working, next)
	}
	return points
}

// ForecastLabel is the x-axis label of the step-th forecast point, starting at 1.
func ForecastLabel(step int) string {
	return "F+" + strconv.Itoa(step)
}

// Forecasts holds the forecast extension of every tracked metric.
type Forecasts struct {
	Labels     []string  `json:"labels"`
	OEE        []float64 `json:"oee"`
	Downtime   []float64 `json:"downtime"`
	Energy     []float64 `json:"energy"`
	Throughput []float64 `json:"throughput"`
	Scrap      []float64 `json:"scrap"`
}

// BuildForecasts forecasts each metric of series.
func BuildForecasts(series Series, horizon, window int) Forecasts {
	forecasts := Forecasts{
		OEE:        Forecast(series.OEE, horizon, window),
		Downtime:   Forecast(series.Downtime, horizon, window),
		Energy:     Forecast(series.Energy, horizon, window),
		Throughput: Forecast(series.Throughput, horizon, window),
		Scrap:      Forecast(series.Scrap, horizon, window),
	}
	forecasts.Labels = make([]string, 0, len(forecasts.OEE))
	for i := range forecasts.OEE {
		forecasts.Labels = append(forecasts.Labels, ForecastLabel(i+1))
	}
	return forecasts
}

// ForecastSeries is history followed by forecast points, one drawable sequence per chart.
type ForecastSeries struct {
	Labels        []string  `json:"labels"`
	OEE           []float64 `json:"oee"`
	Downtime      []float64 `json:"downtime"`
	Energy        []float64 `json:"energy"`
	Throughput    []float64 `json:"throughput"`
	Scrap         []float64 `json:"scrap"`
	HeatTreatment []float64 `json:"heat_treatment"`
}

// ExtendSeries concatenates history and forecasts. The heat-treatment chart reuses downtime.
func ExtendSeries(series Series, forecasts Forecasts) ForecastSeries {
	return ForecastSeries{
		Labels:        concat(series.Dates, forecasts.Labels),
		OEE:           concat(series.OEE, forecasts.OEE),
		Downtime:      concat(series.Downtime, forecasts.Downtime),
		Energy:        concat(series.Energy, forecasts.Energy),
		Throughput:    concat(series.Throughput, forecasts.Throughput),
		Scrap:         concat(series.Scrap, forecasts.Scrap),
		HeatTreatment: concat(series.Downtime, forecasts.Downtime),
	}
}

func concat[T any](head, tail []T) []T {
	out := make([]T, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}
