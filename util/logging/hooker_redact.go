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

package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/fatih/set.v0"
)

// Redacted replaces the value of secret fields.
const Redacted = "[REDACTED]"

var secretFields = set.NewNonTS(
	"candidate",
	"key",
	"masterkey",
	"passphrase",
	"plaintext",
	"privkey",
	"scalar",
	"secret",
	"wif",
)

type redactHooker struct{}

// NewRedactHooker returns a hook that blanks fields which may carry key
// material, matched case-insensitively by name.
func NewRedactHooker() logrus.Hook {
	return &redactHooker{}
}

func (h *redactHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *redactHooker) Fire(entry *logrus.Entry) error {
	for k := range entry.Data {
		if IsSecretField(k) {
			entry.Data[k] = Redacted
		}
	}
	return nil
}

// IsSecretField reports whether a field with this name is redacted.
func IsSecretField(name string) bool {
	return secretFields.Has(strings.ToLower(name))
}
