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

package crypto

import (
	"crypto/subtle"
	"runtime"

	"github.com/awnumar/memguard"
)

// KeyMaterial is an exclusively owned buffer of secret bytes.
//
// A KeyMaterial must be passed by pointer. Whoever holds it last calls Wipe,
// usually through defer right after construction. A finalizer wipes buffers
// that become unreachable without being wiped.
type KeyMaterial struct {
	buf []byte
}

// NewKeyMaterial copies src into a new KeyMaterial. The caller still owns src
// and should wipe it with WipeBytes if it was a temporary.
func NewKeyMaterial(src []byte) *KeyMaterial {
	k := &KeyMaterial{buf: make([]byte, len(src))}
	copy(k.buf, src)
	runtime.SetFinalizer(k, (*KeyMaterial).Wipe)
	return k
}

// Bytes returns the underlying buffer. The slice is borrowed: it must not be
// retained past the next Wipe and must not be modified.
func (k *KeyMaterial) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.buf
}

// Len returns the buffer length.
func (k *KeyMaterial) Len() int {
	if k == nil {
		return 0
	}
	return len(k.buf)
}

// Equal compares two buffers in constant time.
func (k *KeyMaterial) Equal(other *KeyMaterial) bool {
	return subtle.ConstantTimeCompare(k.Bytes(), other.Bytes()) == 1
}

// Wipe zeroes the buffer. It is safe to call more than once.
func (k *KeyMaterial) Wipe() {
	if k == nil {
		return
	}
	WipeBytes(k.buf)
}

// IsWiped reports whether every byte of the buffer is zero.
func (k *KeyMaterial) IsWiped() bool {
	var acc byte
	for _, b := range k.Bytes() {
		acc |= b
	}
	return acc == 0
}

// WipeBytes zeroes b.
func WipeBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
	runtime.KeepAlive(b)
}
