package render

import (
	"fmt"
	"time"

	"bikeflow.org/internal/models"
)

// AnyTimeLabel is shown when no time filter is applied.
const AnyTimeLabel = "Any Time"

// FormatMinute renders the slider readout: a short 12-hour clock time such as
// "3:45 PM", or AnyTimeLabel for NoFilter.
func FormatMinute(f models.TimeFilter) string {
	minute, ok := f.Minute()
	if !ok {
		return AnyTimeLabel
	}
	return time.Date(2000, time.January, 1, 0, minute, 0, 0, time.UTC).Format("3:04 PM")
}

// Title is the tooltip text of a station marker.
func Title(st models.StationTraffic) string {
	return fmt.Sprintf("%d trips (%d departures, %d arrivals)", st.Total, st.Departures, st.Arrivals)
}
