package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang/geo/s2"

	"admin-console/models"
)

// Window selects the dashboard time range.
type Window string

const (
	Window7   Window = "7"
	Window30  Window = "30"
	Window90  Window = "90"
	WindowAll Window = "all"
)

// Days returns the window length in days and whether the window is bounded.
func (w Window) Days() (int, bool) {
	switch w {
	case Window7:
		return 7, true
	case Window30:
		return 30, true
	case Window90:
		return 90, true
	default:
		return 0, false
	}
}

// Sparkline dimensions of the dashboard trend chart.
const (
	trendWidth  = 240.0
	trendHeight = 40.0
)

// fallbackCategory buckets reports whose category carries no name.
const fallbackCategory = "Diğer"

// StatusCounts holds the four mutually exclusive status counts.
type StatusCounts struct {
	Beklemede   int `json:"BEKLEMEDE"`
	Inceleniyor int `json:"INCELENIYOR"`
	Cozuldu     int `json:"COZULDU"`
	Reddedildi  int `json:"REDDEDILDI"`
}

// Total sums the four counts.
func (s StatusCounts) Total() int {
	return s.Beklemede + s.Inceleniyor + s.Cozuldu + s.Reddedildi
}

// StatusDistribution holds the percentage share of each status.
type StatusDistribution struct {
	Beklemede   float64 `json:"BEKLEMEDE"`
	Inceleniyor float64 `json:"INCELENIYOR"`
	Cozuldu     float64 `json:"COZULDU"`
	Reddedildi  float64 `json:"REDDEDILDI"`
}

// CategoryCount is one top-category bucket.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is one calendar-day bucket of the trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrendSeries is the daily created-reports series plus its normalized
// sparkline geometry.
type TrendSeries struct {
	Points   []TrendPoint `json:"points"`
	Max      int          `json:"max"`
	Total    int          `json:"total"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Path     string       `json:"path"`
	AreaPath string       `json:"area_path"`
}

// MapSummary is the viewport hint for the dashboard map, derived from the
// geolocated subset of the filtered reports.
type MapSummary struct {
	Count     int     `json:"count"`
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	MinLat    float64 `json:"min_lat"`
	MaxLat    float64 `json:"max_lat"`
	MinLng    float64 `json:"min_lng"`
	MaxLng    float64 `json:"max_lng"`
}

// DashboardMetrics is the full metrics record for one window/scope selection.
type DashboardMetrics struct {
	TotalReports       int                `json:"total_reports"`
	StatusCounts       StatusCounts       `json:"status_counts"`
	Distribution       StatusDistribution `json:"distribution"`
	ResolutionRate     float64            `json:"resolution_rate"`
	AvgResolutionHours float64            `json:"avg_resolution_hours"`
	AvgOpenAgeDays     float64            `json:"avg_open_age_days"`
	AssignmentRate     float64            `json:"assignment_rate"`
	TopCategories      []CategoryCount    `json:"top_categories"`
	Trend              TrendSeries        `json:"trend"`
	RecentReports      []models.Report    `json:"recent_reports"`
	Map                *MapSummary        `json:"map,omitempty"`
}

// FilterByWindow retains reports created at or after now minus the window.
// The boundary instant is inclusive; "all" keeps everything.
func FilterByWindow(reports []models.Report, window Window, now time.Time) []models.Report {
	days, bounded := window.Days()
	if !bounded {
		return reports
	}
	threshold := now.AddDate(0, 0, -days)
	filtered := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if !r.CreatedAt.Before(threshold) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ComputeMetrics derives the dashboard metrics from an in-memory report list.
// It is a total function: any input, including an empty list, yields a fully
// populated record with no NaN values.
func ComputeMetrics(reports []models.Report, window Window, now time.Time) DashboardMetrics {
	filtered := FilterByWindow(reports, window, now)
	total := len(filtered)

	metrics := DashboardMetrics{TotalReports: total}

	for _, r := range filtered {
		switch r.Status {
		case models.StatusBeklemede:
			metrics.StatusCounts.Beklemede++
		case models.StatusInceleniyor:
			metrics.StatusCounts.Inceleniyor++
		case models.StatusCozuldu:
			metrics.StatusCounts.Cozuldu++
		case models.StatusReddedildi:
			metrics.StatusCounts.Reddedildi++
		}
	}

	distTotal := total
	if distTotal < 1 {
		distTotal = 1
	}
	metrics.Distribution = StatusDistribution{
		Beklemede:   float64(metrics.StatusCounts.Beklemede) / float64(distTotal) * 100,
		Inceleniyor: float64(metrics.StatusCounts.Inceleniyor) / float64(distTotal) * 100,
		Cozuldu:     float64(metrics.StatusCounts.Cozuldu) / float64(distTotal) * 100,
		Reddedildi:  float64(metrics.StatusCounts.Reddedildi) / float64(distTotal) * 100,
	}

	resolved := metrics.StatusCounts.Cozuldu
	if total > 0 {
		metrics.ResolutionRate = float64(resolved) / float64(total) * 100
	}

	var resolutionHours float64
	var openAgeDays float64
	var openCount int
	var assigned int
	for _, r := range filtered {
		if r.Status == models.StatusCozuldu {
			hours := r.UpdatedAt.Sub(r.CreatedAt).Hours()
			if hours < 0 {
				hours = 0
			}
			resolutionHours += hours
		} else {
			days := now.Sub(r.CreatedAt).Hours() / 24
			if days < 0 {
				days = 0
			}
			openAgeDays += days
			openCount++
		}
		if r.AssignedTeam != nil {
			assigned++
		}
	}
	if resolved > 0 {
		metrics.AvgResolutionHours = resolutionHours / float64(resolved)
	}
	if openCount > 0 {
		metrics.AvgOpenAgeDays = openAgeDays / float64(openCount)
	}
	if total > 0 {
		metrics.AssignmentRate = float64(assigned) / float64(total) * 100
	}

	metrics.TopCategories = topCategories(filtered, 5)
	metrics.Trend = buildTrend(filtered, window, now)
	metrics.RecentReports = recentReports(filtered, 5)
	metrics.Map = mapSummary(filtered)

	return metrics
}

// topCategories groups reports by category name and returns the biggest
// buckets. The sort is stable so equal counts keep first-encountered order.
func topCategories(reports []models.Report, limit int) []CategoryCount {
	index := make(map[string]int)
	buckets := []CategoryCount{}
	for _, r := range reports {
		name := fallbackCategory
		if r.Category != nil && r.Category.Name != "" {
			name = r.Category.Name
		}
		if i, ok := index[name]; ok {
			buckets[i].Count++
			continue
		}
		index[name] = len(buckets)
		buckets = append(buckets, CategoryCount{Name: name, Count: 1})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

// recentReports returns the newest reports by creation time.
func recentReports(reports []models.Report, limit int) []models.Report {
	recent := make([]models.Report, len(reports))
	copy(recent, reports)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// buildTrend buckets report creation dates into one entry per local calendar
// day, zero-filling empty days, and derives the normalized sparkline paths.
func buildTrend(reports []models.Report, window Window, now time.Time) TrendSeries {
	days, bounded := window.Days()
	if !bounded {
		days = 30
	}

	start := now.AddDate(0, 0, -(days - 1))
	loc := now.Location()

	points := make([]TrendPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).In(loc).Format("2006-01-02")
		points[i] = TrendPoint{Date: key}
		index[key] = i
	}

	for _, r := range reports {
		key := r.CreatedAt.In(loc).Format("2006-01-02")
		if i, ok := index[key]; ok {
			points[i].Count++
		}
	}

	series := TrendSeries{
		Points: points,
		Width:  trendWidth,
		Height: trendHeight,
	}
	for _, p := range points {
		series.Total += p.Count
		if p.Count > series.Max {
			series.Max = p.Count
		}
	}
	series.Path, series.AreaPath = trendPaths(points, series.Max)
	return series
}

// trendPaths renders the bucket values as an SVG polyline and its closed
// area variant. With max 0 the line sits on the baseline.
func trendPaths(points []TrendPoint, max int) (string, string) {
	if len(points) == 0 {
		return "", ""
	}

	denom := float64(len(points) - 1)
	if denom < 1 {
		denom = 1
	}

	coords := make([]string, len(points))
	for i, p := range points {
		x := float64(i) / denom * trendWidth
		y := trendHeight
		if max > 0 {
			y = trendHeight - float64(p.Count)/float64(max)*trendHeight
		}
		coords[i] = fmt.Sprintf("%g,%g", x, y)
	}

	path := "M " + coords[0]
	if len(coords) > 1 {
		path += " L " + strings.Join(coords[1:], " ")
	}
	area := path + fmt.Sprintf(" L %g,%g L %g,%g Z", trendWidth, trendHeight, 0.0, trendHeight)
	return path, area
}

// mapSummary computes the bounding rect and centroid of the geolocated
// reports for the dashboard map viewport. Nil when no report carries
// coordinates.
func mapSummary(reports []models.Report) *MapSummary {
	rect := s2.EmptyRect()
	count := 0
	for _, r := range reports {
		if r.Latitude == nil || r.Longitude == nil {
			continue
		}
		rect = rect.AddPoint(s2.LatLngFromDegrees(*r.Latitude, *r.Longitude))
		count++
	}
	if count == 0 {
		return nil
	}

	center := rect.Center()
	lo, hi := rect.Lo(), rect.Hi()
	return &MapSummary{
		Count:     count,
		CenterLat: center.Lat.Degrees(),
		CenterLng: center.Lng.Degrees(),
		MinLat:    lo.Lat.Degrees(),
		MaxLat:    hi.Lat.Degrees(),
		MinLng:    lo.Lng.Degrees(),
		MaxLng:    hi.Lng.Degrees(),
	}
}
