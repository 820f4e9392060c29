// Copyright (C) 2018  MediBloc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>

package metrics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/medibloc/go-keyrecover/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		if metrics.Enabled() {
			t.Skip("metrics already enabled")
		}
		c := metrics.NewCounter("test_disabled")
		c.Inc(3)
		assert.Equal(t, int64(0), c.Count())
		assert.IsType(t, new(gometrics.NilTimer), metrics.NewTimer("test_disabled_timer"))
	})

	metrics.Enable()
	assert.True(t, metrics.Enabled())

	c := metrics.NewCounter("test_counter")
	c.Inc(2)
	assert.Equal(t, int64(2), metrics.NewCounter("test_counter").Count())

	g := metrics.NewGauge("test_gauge")
	g.Update(7)

	timer := metrics.NewTimer("test_timer")
	timer.Update(5 * time.Millisecond)
	assert.Equal(t, int64(1), timer.Count())

	var buf bytes.Buffer
	metrics.WriteTo(&buf)
	assert.Contains(t, buf.String(), "counter test_counter")
	assert.Contains(t, buf.String(), "gauge test_gauge")
	assert.Contains(t, buf.String(), "timer test_timer")
}
