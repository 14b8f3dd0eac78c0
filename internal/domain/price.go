package domain

import (
	"errors"
	"math"
	"sort"
	"time"
)

var (
	// ErrNoData is returned when a price source has nothing usable for a symbol
	ErrNoData = errors.New("no price data")
	// ErrNoOverlap is returned when two series share no dates
	ErrNoOverlap = errors.New("no overlapping dates")
)

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PriceSeries is a date-ordered sequence of values for one symbol.
// NaN and infinite values never make it into Points.
type PriceSeries struct {
	Symbol string
	Points []SeriesPoint
}

// NewPriceSeries sorts the prices by date, drops non-finite values and keeps
// the last price seen for any duplicated date
func NewPriceSeries(symbol string, prices []AssetPrice) PriceSeries {
	sorted := make([]AssetPrice, 0, len(prices))
	for _, p := range prices {
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			continue
		}
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := []SeriesPoint{}
	for _, p := range sorted {
		if n := len(points); n > 0 && points[n-1].Date.Equal(p.Date) {
			points[n-1].Value = p.Price
			continue
		}
		points = append(points, SeriesPoint{
			Date:  p.Date,
			Value: p.Price,
		})
	}

	return PriceSeries{
		Symbol: symbol,
		Points: points,
	}
}

func (s PriceSeries) IsEmpty() bool {
	return len(s.Points) == 0
}

// WeekEnding returns the Sunday closing the week that t falls in, as a UTC
// date. The week is read from t's own calendar date, so bars stamped in the
// exchange's time zone land in the exchange's week. A Sunday maps to itself.
func WeekEnding(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	daysUntilSunday := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, daysUntilSunday)
}

// ResampleWeekly keeps the last observation of every week, labelled with the
// week-ending Sunday. Weeks without observations produce no point.
func (s PriceSeries) ResampleWeekly() PriceSeries {
	points := []SeriesPoint{}
	for _, p := range s.Points {
		week := WeekEnding(p.Date)
		if n := len(points); n > 0 && points[n-1].Date.Equal(week) {
			points[n-1].Value = p.Value
			continue
		}
		points = append(points, SeriesPoint{
			Date:  week,
			Value: p.Value,
		})
	}
	return PriceSeries{
		Symbol: s.Symbol,
		Points: points,
	}
}

// AlignedPair holds two series restricted to their shared dates
type AlignedPair struct {
	Ticker1 string
	Ticker2 string
	Dates   []time.Time
	Values1 []float64
	Values2 []float64
}

func (a AlignedPair) Len() int {
	return len(a.Dates)
}

// Align inner-joins two date-ordered series. It returns ErrNoOverlap when the
// series share no dates.
func Align(s1, s2 PriceSeries) (*AlignedPair, error) {
	out := AlignedPair{
		Ticker1: s1.Symbol,
		Ticker2: s2.Symbol,
		Dates:   []time.Time{},
		Values1: []float64{},
		Values2: []float64{},
	}

	i, j := 0, 0
	for i < len(s1.Points) && j < len(s2.Points) {
		d1 := s1.Points[i].Date
		d2 := s2.Points[j].Date
		switch {
		case d1.Before(d2):
			i++
		case d2.Before(d1):
			j++
		default:
			out.Dates = append(out.Dates, d1)
			out.Values1 = append(out.Values1, s1.Points[i].Value)
			out.Values2 = append(out.Values2, s2.Points[j].Value)
			i++
			j++
		}
	}

	if len(out.Dates) == 0 {
		return nil, ErrNoOverlap
	}

	return &out, nil
}
