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

package keystore

import (
	"context"
	"sort"
	"sync"

	"github.com/medibloc/go-keyrecover/util/logging"
	"github.com/sirupsen/logrus"
)

// DecryptOptions controls DecryptAll.
type DecryptOptions struct {
	// Workers is the number of entries decrypted in parallel. Values below
	// one mean one.
	Workers int
}

// Report is the outcome of DecryptAll. Keys and Failures are sorted by KeyID.
type Report struct {
	Keys     []*DecryptedKey
	Failures []*EntryError
}

// Wipe zeroes every decrypted key in the report.
func (r *Report) Wipe() {
	if r == nil {
		return
	}
	for _, k := range r.Keys {
		k.Wipe()
	}
}

type decryptResult struct {
	id  KeyID
	key *DecryptedKey
	err error
}

// DecryptAll decrypts every entry of the keystore with a verified master key.
//
// A failing entry is reported in Failures and never stops the batch. If ctx
// is cancelled, keys decrypted so far are wiped and ctx.Err() is returned.
func DecryptAll(ctx context.Context, holder KeyHolder, vk *VerifiedKey, opts DecryptOptions) (*Report, error) {
	if vk == nil || !vk.verified {
		return nil, ErrUnverifiedKey
	}

	entries := entriesOf(holder)
	// A key accepted on an empty keystore was never checked against any entry.
	if !vk.exercised && len(entries) > 0 {
		return nil, ErrUnverifiedKey
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan *EncryptedKey)
	results := make(chan *decryptResult, len(entries))

	wg := new(sync.WaitGroup)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				if ctx.Err() != nil {
					continue
				}
				key, err := decryptEntry(vk.key, e)
				results <- &decryptResult{id: e.id, key: key, err: err}
			}
		}()
	}

dispatch:
	for _, e := range entries {
		select {
		case jobs <- e:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	report := new(Report)
	for r := range results {
		if r.err != nil {
			report.Failures = append(report.Failures, &EntryError{ID: r.id, Err: r.err})
			continue
		}
		report.Keys = append(report.Keys, r.key)
	}

	if err := ctx.Err(); err != nil {
		report.Wipe()
		return nil, err
	}

	sort.Slice(report.Keys, func(i, j int) bool {
		return report.Keys[i].ID.Less(report.Keys[j].ID)
	})
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].ID.Less(report.Failures[j].ID)
	})

	for _, f := range report.Failures {
		logging.WithFields(logrus.Fields{
			"id":  f.ID.String(),
			"err": f.Err,
		}).Debug("Failed to decrypt key entry.")
	}
	return report, nil
}
