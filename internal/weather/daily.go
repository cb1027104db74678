package weather

import "time"

// DailyAggregate collapses the 3-hour forecast samples of one calendar date
// into a single display card's worth of data. Icon, description, humidity and
// wind come from the first sample of the date; temperatures are collected
// from every sample so an average can be shown.
type DailyAggregate struct {
	Date        time.Time
	Temps       []float64 // Celsius, one per sample
	Icon        string
	Description string
	Humidity    float64
	WindSpeed   float64
}

// AverageTempC returns the mean of all sample temperatures for the date.
func (d DailyAggregate) AverageTempC() float64 {
	if len(d.Temps) == 0 {
		return 0
	}
	var sum float64
	for _, t := range d.Temps {
		sum += t
	}
	return sum / float64(len(d.Temps))
}

// GroupDaily buckets forecast entries by calendar date in loc, preserving
// first-encounter order. Each bucket keeps the first sample's metadata and
// accumulates every sample's temperature.
func GroupDaily(entries []ForecastEntry, loc *time.Location) []DailyAggregate {
	if loc == nil {
		loc = time.Local
	}

	var days []DailyAggregate
	index := make(map[string]int)

	for _, e := range entries {
		ts := time.Unix(e.Timestamp, 0).In(loc)
		key := ts.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			days = append(days, DailyAggregate{
				Date:        ts,
				Icon:        e.Icon,
				Description: e.Description,
				Humidity:    e.Humidity,
				WindSpeed:   e.WindSpeed,
			})
			i = len(days) - 1
			index[key] = i
		}
		days[i].Temps = append(days[i].Temps, e.TempC)
	}

	return days
}

// UpcomingDays drops the first date bucket (the current, usually partial day)
// and returns up to max of the remaining buckets in encounter order.
func UpcomingDays(days []DailyAggregate, max int) []DailyAggregate {
	if len(days) <= 1 {
		return nil
	}
	rest := days[1:]
	if len(rest) > max {
		rest = rest[:max]
	}
	return rest
}
