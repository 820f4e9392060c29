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
	"errors"
	"fmt"
	"os"

	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/urfave/cli"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitWrongKey = 2
)

var (
	version string
	commit  string
	branch  string
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "keyrecover:", err)
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Action = keyrecover
	app.Name = "keyrecover"
	app.Usage = "recover private keys from an encrypted wallet"
	app.Version = versionStr()
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "YAML config `FILE`"},
		cli.StringFlag{Name: "keystore, k", Usage: "wallet YAML dump `FILE`"},
		cli.StringFlag{Name: "leveldb", Usage: "wallet leveldb `DIR`"},
		cli.StringFlag{Name: "masterkey", Usage: "master key as 64 hex characters; prompted for when absent"},
		cli.StringFlag{Name: "network", Usage: "mainnet, testnet3, regtest, simnet or signet"},
		cli.BoolFlag{Name: "reject-empty", Usage: "fail instead of accepting any master key for a wallet without keys"},
		cli.BoolFlag{Name: "thorough", Usage: "decrypt every key while verifying"},
		cli.IntFlag{Name: "workers", Usage: "number of parallel decryption workers"},
		cli.BoolFlag{Name: "metrics", Usage: "print a metrics snapshot to stderr"},
	}
	return app
}

func versionStr() string {
	if version == "" {
		return ""
	}
	return fmt.Sprintf("%s, branch %s, commit %s", version, branch, commit)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, keystore.ErrWrongMasterKey):
		return exitWrongKey
	default:
		return exitFailure
	}
}
