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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/medibloc/go-keyrecover/crypto"
	"github.com/medibloc/go-keyrecover/keystore"
	"github.com/medibloc/go-keyrecover/metrics"
	"github.com/medibloc/go-keyrecover/recovery"
	"github.com/medibloc/go-keyrecover/util/logging"
	"github.com/medibloc/go-keyrecover/walletdb"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var errUsage = errors.New("exactly one of --keystore and --leveldb is required")

func keyrecover(ctx *cli.Context) error {
	cfg, err := recovery.LoadConfig(ctx.String("config"))
	if err != nil {
		return err
	}
	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level, cfg.Log.Age); err != nil {
		return err
	}
	if cfg.Metrics {
		metrics.Enable()
	}

	holder, err := loadHolder(ctx)
	if err != nil {
		return err
	}

	candidate, err := masterKey(ctx)
	if err != nil {
		return err
	}
	defer crypto.WipeBytes(candidate)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := recovery.Run(runCtx, cfg, holder, candidate)
	if err != nil {
		return err
	}

	if !res.Exercised {
		logging.Console().Warn("Wallet has no keys; master key was not checked.")
	}
	printResult(ctx.App.Writer, ctx.App.ErrWriter, res)
	if cfg.Metrics {
		metrics.WriteTo(ctx.App.ErrWriter)
	}
	logging.Console().WithFields(logrus.Fields{
		"run":       res.RunID,
		"recovered": len(res.Records),
		"failed":    len(res.Failures),
	}).Info("Recovery finished.")
	return nil
}

func applyFlags(ctx *cli.Context, cfg *recovery.Config) {
	if ctx.IsSet("network") {
		cfg.Network = ctx.String("network")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("reject-empty") {
		cfg.AcceptNoKeys = !ctx.Bool("reject-empty")
	}
	if ctx.IsSet("thorough") {
		cfg.Thorough = ctx.Bool("thorough")
	}
	if ctx.IsSet("metrics") {
		cfg.Metrics = ctx.Bool("metrics")
	}
}

func loadHolder(ctx *cli.Context) (keystore.KeyHolder, error) {
	file, dir := ctx.String("keystore"), ctx.String("leveldb")
	switch {
	case file != "" && dir == "":
		return walletdb.LoadYAML(file)
	case dir != "" && file == "":
		return walletdb.LoadLevelDB(dir)
	default:
		return nil, errUsage
	}
}

func printResult(out, errOut io.Writer, res *recovery.Result) {
	for _, r := range res.Records {
		fmt.Fprintf(out, "KeyID: %s  WIF: %s\n", r.ID.DisplayString(), r.WIF)
	}
	for _, f := range res.Failures {
		fmt.Fprintf(errOut, "KeyID: %s  error: %v\n", f.ID.DisplayString(), f.Err)
	}
}
