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

package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/urfave/cli"
	"golang.org/x/crypto/ssh/terminal"
)

var errMasterKeyHex = errors.New("master key must be hex encoded")

var readPassword = defaultReadPassword

// defaultReadPassword reads the master key without echo, or a plain line when
// stdin is not a terminal.
func defaultReadPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadBytes('\n')
		if err != nil && len(line) == 0 {
			return nil, err
		}
		return line, nil
	}
	fmt.Fprint(os.Stderr, "Enter master key (hex): ")
	defer fmt.Fprintln(os.Stderr)
	return terminal.ReadPassword(fd)
}

func masterKey(ctx *cli.Context) ([]byte, error) {
	if ctx.IsSet("masterkey") {
		return decodeMasterKey([]byte(ctx.String("masterkey")))
	}
	input, err := readPassword()
	if err != nil {
		return nil, err
	}
	defer crypto.WipeBytes(input)
	return decodeMasterKey(input)
}

// decodeMasterKey works on bytes so no unwipeable string copy of the key is
// made.
func decodeMasterKey(input []byte) ([]byte, error) {
	s := bytes.TrimSpace(input)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	key := make([]byte, hex.DecodedLen(len(s)))
	if _, err := hex.Decode(key, s); err != nil {
		crypto.WipeBytes(key)
		return nil, errMasterKeyHex
	}
	return key, nil
}
