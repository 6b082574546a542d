package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/hdwallet/internal/config"
	"github.com/tdex-network/hdwallet/internal/core/application"
	"github.com/urfave/cli/v2"
)

const logFilename = "hdwallet.log"

var logRotator *rotator.Rotator

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "hdwallet"
	app.Usage = "Command line interface to manage the accounts of a local HD wallet"
	app.Before = setup
	app.After = teardown
	app.Commands = append(
		app.Commands,
		&genseed,
		&createwallet,
		&importwallet,
		&exportwallet,
		&listaccounts,
		&listaddresses,
		&showmnemonic,
		&removeaccount,
		&setaddresscount,
		&farmerkeys,
		&tokens,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func setup(_ *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	logFile := filepath.Join(config.GetDatadir(), config.LogsLocation, logFilename)
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create log rotator: %w", err)
	}
	logRotator = r
	log.SetOutput(logWriter{})
	return nil
}

func teardown(_ *cli.Context) error {
	if logRotator != nil {
		return logRotator.Close()
	}
	return nil
}

// logWriter writes to stderr and to the rotated log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stderr.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

// getWalletService returns the started wallet service for the configured
// datadir and the func to release it.
func getWalletService(ctx *cli.Context) (
	application.WalletService, func(), error,
) {
	datadir := config.GetDatadir()
	cfg := &application.Config{
		DBType:          application.DBBadger,
		DBDir:           filepath.Join(datadir, config.DbLocation),
		KeyDir:          filepath.Join(datadir, config.KeyLocation),
		LedgerRateLimit: config.GetInt(config.LedgerRateLimitKey),
		Params:          config.GetChainParams(),
		KeyFiles:        config.GetStringSlice(config.KeyFilesKey),
		NumAddresses:    config.GetUint32(config.NumAddressesKey),
		MaxAddresses:    config.GetUint32(config.MaxAddressesKey),
		MaxKeyFiles:     config.GetUint32(config.MaxKeyFilesKey),
		CacheTTL:        config.GetDuration(config.CacheTTLKey),
		DefaultExpire:   config.GetUint32(config.DefaultExpireKey),
		LockTimeout:     config.GetDuration(config.LockTimeoutKey),
		FeeRatio:        config.GetFeeRatio(),
		TokenWhitelist:  config.GetTokenWhitelist(),
	}
	if err := cfg.Validate(); err != nil {
		cfg.Close()
		return nil, nil, err
	}

	svc := cfg.WalletService()
	if err := svc.Start(ctx.Context); err != nil {
		cfg.Close()
		return nil, nil, err
	}
	return svc, cfg.Close, nil
}

func passphraseFlag(ctx *cli.Context) *string {
	if !ctx.IsSet("passphrase") {
		return nil
	}
	passphrase := ctx.String("passphrase")
	return &passphrase
}

func printJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	fmt.Println(string(buf))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[hdwallet] %v\n", err)
	}
	os.Exit(1)
}
