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

// Package recovery runs a full key recovery: it verifies a candidate master
// key, decrypts every entry and exports the keys as WIF strings.
package recovery

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/metrics"
	"github.com/medibloc/go-keyrecover/util/logging"
	"github.com/medibloc/go-keyrecover/wif"
	"github.com/pborman/uuid"
	"github.com/sirupsen/logrus"
)

// Record is one exported key.
type Record struct {
	ID  keystore.KeyID
	WIF string
}

// Result is the outcome of Run.
type Result struct {
	RunID string
	// Exercised is false when an empty keystore was accepted without
	// decrypting anything.
	Exercised bool
	Records   []Record
	Failures  []*keystore.EntryError
}

// Run verifies candidate against holder and exports every key that decrypts.
// candidate is wiped before Run returns. Entry failures are reported in the
// result; an error is returned only when verification fails or ctx is done.
func Run(ctx context.Context, cfg *Config, holder keystore.KeyHolder, candidate []byte) (*Result, error) {
	defer crypto.WipeBytes(candidate)

	if cfg == nil {
		cfg = DefaultConfig()
	}
	version, err := wif.VersionByName(cfg.Network)
	if err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.New()}
	log := logging.WithField("run", result.RunID)

	// A nil holder is an empty keystore.
	var (
		entries []*keystore.EncryptedKey
		checked bool
	)
	if holder != nil {
		entries = holder.Entries()
		checked = holder.CheckRecord() != nil
	}
	metrics.NewGauge(metrics.KeystoreSize).Update(int64(len(entries)))
	log.WithFields(logrus.Fields{
		"entries":  len(entries),
		"checked":  checked,
		"network":  cfg.Network,
		"thorough": cfg.Thorough,
	}).Info("Starting key recovery.")

	start := time.Now()
	vk, err := keystore.VerifyWithOptions(holder, candidate, keystore.VerifyOptions{
		AcceptNoKeys: cfg.AcceptNoKeys,
		Thorough:     cfg.Thorough,
	})
	metrics.NewTimer(metrics.VerifyTimer).UpdateSince(start)
	if err != nil {
		log.WithError(err).Warn("Master key rejected.")
		return nil, err
	}
	defer vk.Wipe()
	result.Exercised = vk.Exercised()

	start = time.Now()
	report, err := keystore.DecryptAll(ctx, holder, vk, keystore.DecryptOptions{
		Workers: workers(cfg.Workers),
	})
	metrics.NewTimer(metrics.DecryptTimer).UpdateSince(start)
	if err != nil {
		log.WithError(err).Warn("Key decryption aborted.")
		return nil, err
	}
	defer report.Wipe()

	result.Failures = report.Failures
	for _, key := range report.Keys {
		id := key.ID
		s, err := wif.Export(key, version)
		if err != nil {
			result.Failures = append(result.Failures, &keystore.EntryError{ID: id, Err: err})
			continue
		}
		result.Records = append(result.Records, Record{ID: id, WIF: s})
	}
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].ID.Less(result.Failures[j].ID)
	})

	for _, f := range result.Failures {
		log.WithFields(logrus.Fields{
			"id":  f.ID.String(),
			"err": f.Err,
		}).Warn("Key entry could not be recovered.")
	}
	metrics.NewCounter(metrics.DecryptedKeys).Inc(int64(len(result.Records)))
	metrics.NewCounter(metrics.FailedKeys).Inc(int64(len(result.Failures)))

	log.WithFields(logrus.Fields{
		"recovered": len(result.Records),
		"failed":    len(result.Failures),
	}).Info("Finished key recovery.")
	return result, nil
}

func workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
