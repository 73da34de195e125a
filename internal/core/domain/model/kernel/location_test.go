package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{name: "mexico city", lat: 19.4326, lng: -99.1332},
		{name: "min bounds", lat: kernel.LatitudeMin, lng: kernel.LongitudeMin},
		{name: "max bounds", lat: kernel.LatitudeMax, lng: kernel.LongitudeMax},
		{name: "latitude too small", lat: -90.5, lng: 0, wantErr: true},
		{name: "latitude too large", lat: 90.5, lng: 0, wantErr: true},
		{name: "longitude too small", lat: 0, lng: -180.1, wantErr: true},
		{name: "longitude too large", lat: 0, lng: 181, wantErr: true},
		{name: "not a number", lat: math.NaN(), lng: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lng)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
				return
			}

			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.lat, loc.Latitude(), 1e-9)
			assert.InDelta(t, tt.lng, loc.Longitude(), 1e-9)
		})
	}
}

func TestNewLocation_ReportsBothCoordinates(t *testing.T) {
	_, err := kernel.NewLocation(100, 200)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
	assert.Contains(t, err.Error(), "longitude")
}

func TestLocation_IsEqual(t *testing.T) {
	a := kernel.MustNewLocation(19.4326, -99.1332)
	b := kernel.MustNewLocation(19.4326, -99.1332)
	c := kernel.MustNewLocation(19.4361, -99.1362)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = a.IsEqual(kernel.Location{})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}

func TestLocation_Distance(t *testing.T) {
	a := kernel.MustNewLocation(0, 0)
	b := kernel.MustNewLocation(3, 4)

	d, err := a.Distance(b)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)

	back, err := b.Distance(a)
	require.NoError(t, err)
	assert.InDelta(t, d, back, 1e-9)
}

func TestLocation_MoveTowards(t *testing.T) {
	t.Run("covers a fraction of the remaining distance", func(t *testing.T) {
		from := kernel.MustNewLocation(10, 20)
		to := kernel.MustNewLocation(20, 40)

		next, err := from.MoveTowards(to, 0.1)

		require.NoError(t, err)
		assert.InDelta(t, 11.0, next.Latitude(), 1e-9)
		assert.InDelta(t, 22.0, next.Longitude(), 1e-9)
	})

	t.Run("snaps to the target once close enough", func(t *testing.T) {
		to := kernel.MustNewLocation(19.4361, -99.1362)
		from := kernel.MustNewLocation(19.43605, -99.13615)

		next, err := from.MoveTowards(to, 0.1)

		require.NoError(t, err)
		eq, err := next.IsEqual(to)
		require.NoError(t, err)
		assert.True(t, eq)
	})

	t.Run("eventually arrives", func(t *testing.T) {
		current := kernel.MustNewLocation(19.4326, -99.1332)
		target := kernel.MustNewLocation(19.4361, -99.1362)

		var err error
		arrived := false
		for range 200 {
			current, err = current.MoveTowards(target, 0.1)
			require.NoError(t, err)
			if eq, _ := current.IsEqual(target); eq {
				arrived = true
				break
			}
		}

		assert.True(t, arrived)
	})

	t.Run("rejects an invalid fraction", func(t *testing.T) {
		from := kernel.MustNewLocation(0, 0)

		_, err := from.MoveTowards(from, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = from.MoveTowards(from, 1.5)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
