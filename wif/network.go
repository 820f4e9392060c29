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

package wif

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// ErrUnknownNetwork is returned for unsupported network names.
var ErrUnknownNetwork = errors.New("unknown network")

var networks = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"main":     &chaincfg.MainNetParams,
	"testnet":  &chaincfg.TestNet3Params,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"simnet":   &chaincfg.SimNetParams,
	"signet":   &chaincfg.SigNetParams,
}

// NetworkByName returns the chain parameters for a network name.
func NetworkByName(name string) (*chaincfg.Params, error) {
	params, ok := networks[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownNetwork
	}
	return params, nil
}

// VersionByName returns the WIF version byte of a network.
func VersionByName(name string) (byte, error) {
	params, err := NetworkByName(name)
	if err != nil {
		return 0, err
	}
	return params.PrivateKeyID, nil
}
