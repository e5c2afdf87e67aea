package geo_test

import (
	"testing"

	"funnel-metrics-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokyoStation = geo.Point{Lat: 35.6812, Lng: 139.7671}
	osakaStation = geo.Point{Lat: 34.6937, Lng: 135.5023}
	shinjuku     = geo.Point{Lat: 35.6896, Lng: 139.7006}
	yokohama     = geo.Point{Lat: 35.4658, Lng: 139.6223}
)

type site struct {
	id  int64
	loc *geo.Point
}

func TestHaversineKm_TokyoOsaka(t *testing.T) {
	d := geo.HaversineKm(tokyoStation, osakaStation)
	assert.GreaterOrEqual(t, d, 402.0)
	assert.LessOrEqual(t, d, 404.0)

	assert.InDelta(t, d, geo.HaversineKm(osakaStation, tokyoStation), 1e-9)
	assert.Equal(t, 0.0, geo.HaversineKm(tokyoStation, tokyoStation))
}

func TestPoint_Valid(t *testing.T) {
	var nilPoint *geo.Point
	assert.False(t, nilPoint.Valid())
	assert.False(t, (&geo.Point{}).Valid())
	assert.False(t, (&geo.Point{Lat: 91, Lng: 10}).Valid())
	assert.True(t, (&geo.Point{Lat: 0, Lng: 10}).Valid())
	assert.True(t, (&tokyoStation).Valid())
}

func TestFilterByRadius_ExcludesMissingCoordinates(t *testing.T) {
	items := []site{
		{id: 1, loc: &shinjuku},
		{id: 2, loc: nil},
		{id: 3, loc: &geo.Point{}},
		{id: 4, loc: &osakaStation},
		{id: 5, loc: &yokohama},
	}

	res := geo.FilterByRadius(items, func(s site) *geo.Point { return s.loc }, tokyoStation, 50)

	assert.Equal(t, 2, res.MissingCoordinates)
	require.Len(t, res.Kept, 2)
	assert.Equal(t, int64(1), res.Kept[0].Item.id)
	assert.Equal(t, int64(5), res.Kept[1].Item.id)
}

func TestSortByDistance_TiesBrokenByID(t *testing.T) {
	items := []geo.Located[site]{
		{Item: site{id: 9}, DistanceKm: 5},
		{Item: site{id: 3}, DistanceKm: 1},
		{Item: site{id: 7}, DistanceKm: 5},
		{Item: site{id: 2}, DistanceKm: 5},
	}

	geo.SortByDistance(items, func(s site) int64 { return s.id })

	got := make([]int64, 0, len(items))
	for _, it := range items {
		got = append(got, it.Item.id)
	}
	assert.Equal(t, []int64{3, 2, 7, 9}, got)
}
