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
	"sort"

	set "gopkg.in/fatih/set.v0"
)

// KeyHolder gives read access to an encrypted keystore.
type KeyHolder interface {
	// Entries returns every encrypted key, ordered by KeyID.
	Entries() []*EncryptedKey

	// CheckRecord returns the master key check record, or nil.
	CheckRecord() *MasterKeyCheck
}

// LegacyKeyHolder keeps all keys in a single map.
type LegacyKeyHolder struct {
	keys  map[KeyID]*EncryptedKey
	check *MasterKeyCheck
}

var _ KeyHolder = &LegacyKeyHolder{}

// NewLegacyKeyHolder creates an empty holder.
func NewLegacyKeyHolder() *LegacyKeyHolder {
	return &LegacyKeyHolder{
		keys: make(map[KeyID]*EncryptedKey),
	}
}

// AddKey adds an entry.
func (h *LegacyKeyHolder) AddKey(e *EncryptedKey) error {
	if h.HasKey(e.ID()) {
		return ErrDuplicateKey
	}
	h.keys[e.ID()] = e
	return nil
}

// HasKey reports whether an entry with the given id is present.
func (h *LegacyKeyHolder) HasKey(id KeyID) bool {
	return h.keys[id] != nil
}

// GetKey returns the entry for id.
func (h *LegacyKeyHolder) GetKey(id KeyID) (*EncryptedKey, error) {
	if !h.HasKey(id) {
		return nil, ErrNoMatch
	}
	return h.keys[id], nil
}

// Len returns the number of entries.
func (h *LegacyKeyHolder) Len() int {
	return len(h.keys)
}

// SetCheckRecord sets the master key check record.
func (h *LegacyKeyHolder) SetCheckRecord(c *MasterKeyCheck) {
	h.check = c
}

// CheckRecord implements KeyHolder.
func (h *LegacyKeyHolder) CheckRecord() *MasterKeyCheck {
	return h.check
}

// Entries implements KeyHolder.
func (h *LegacyKeyHolder) Entries() []*EncryptedKey {
	entries := make([]*EncryptedKey, 0, len(h.keys))
	for _, e := range h.keys {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

// DescriptorKeyHolder keeps keys grouped by descriptor. The same key may be
// referenced by several descriptors.
type DescriptorKeyHolder struct {
	descriptors map[string]*LegacyKeyHolder
	check       *MasterKeyCheck
}

var _ KeyHolder = &DescriptorKeyHolder{}

// NewDescriptorKeyHolder creates an empty holder.
func NewDescriptorKeyHolder() *DescriptorKeyHolder {
	return &DescriptorKeyHolder{
		descriptors: make(map[string]*LegacyKeyHolder),
	}
}

// AddKey adds an entry under the given descriptor.
func (h *DescriptorKeyHolder) AddKey(descriptor string, e *EncryptedKey) error {
	d, ok := h.descriptors[descriptor]
	if !ok {
		d = NewLegacyKeyHolder()
		h.descriptors[descriptor] = d
	}
	return d.AddKey(e)
}

// Descriptors returns the descriptor ids in sorted order.
func (h *DescriptorKeyHolder) Descriptors() []string {
	ids := make([]string, 0, len(h.descriptors))
	for id := range h.descriptors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Descriptor returns the keys of a single descriptor.
func (h *DescriptorKeyHolder) Descriptor(id string) (*LegacyKeyHolder, error) {
	d, ok := h.descriptors[id]
	if !ok {
		return nil, ErrNoMatch
	}
	return d, nil
}

// SetCheckRecord sets the master key check record.
func (h *DescriptorKeyHolder) SetCheckRecord(c *MasterKeyCheck) {
	h.check = c
}

// CheckRecord implements KeyHolder.
func (h *DescriptorKeyHolder) CheckRecord() *MasterKeyCheck {
	return h.check
}

// Entries implements KeyHolder. Keys shared between descriptors are returned
// once.
func (h *DescriptorKeyHolder) Entries() []*EncryptedKey {
	seen := set.NewNonTS()
	var entries []*EncryptedKey
	for _, id := range h.Descriptors() {
		for _, e := range h.descriptors[id].Entries() {
			if seen.Has(e.ID()) {
				continue
			}
			seen.Add(e.ID())
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []*EncryptedKey) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id.Less(entries[j].id)
	})
}

func entriesOf(holder KeyHolder) []*EncryptedKey {
	if holder == nil {
		return nil
	}
	return holder.Entries()
}
