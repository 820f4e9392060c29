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

package metrics

import (
	"io"
	"sync/atomic"

	"github.com/medibloc/go-keyrecover/util/logging"
	metrics "github.com/rcrowley/go-metrics"
)

// Metric names.
const (
	DecryptedKeys = "keyrecover_decrypted"
	FailedKeys    = "keyrecover_failed"
	KeystoreSize  = "keyrecover_keys"
	VerifyTimer   = "keyrecover_verify"
	DecryptTimer  = "keyrecover_decrypt"
)

var enabled int32

// Enable turns on metric collection. Metrics created before the call stay
// no-ops.
func Enable() {
	if atomic.CompareAndSwapInt32(&enabled, 0, 1) {
		logging.Info("Metrics enabled.")
	}
}

// Enabled reports whether metrics are collected.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// NewCounter create a new metrics Counter
func NewCounter(name string) metrics.Counter {
	if !Enabled() {
		return new(metrics.NilCounter)
	}
	return metrics.GetOrRegisterCounter(name, metrics.DefaultRegistry)
}

// NewTimer create a new metrics Timer
func NewTimer(name string) metrics.Timer {
	if !Enabled() {
		return new(metrics.NilTimer)
	}
	return metrics.GetOrRegisterTimer(name, metrics.DefaultRegistry)
}

// NewGauge create a new metrics Gauge
func NewGauge(name string) metrics.Gauge {
	if !Enabled() {
		return new(metrics.NilGauge)
	}
	return metrics.GetOrRegisterGauge(name, metrics.DefaultRegistry)
}

// WriteTo writes a snapshot of every registered metric to w.
func WriteTo(w io.Writer) {
	metrics.WriteOnce(metrics.DefaultRegistry, w)
}
