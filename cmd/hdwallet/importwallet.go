package main

import (
	"encoding/hex"
	"fmt"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var importwallet = cli.Command{
	Name:  "import",
	Usage: "import an exported key file as new account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "seed",
			Usage:    "the hex encoded master seed",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "fingerprint",
			Usage: "the fingerprint of the key file, if protected by passphrase",
		},
		&cli.StringFlag{
			Name:  "key-file",
			Usage: "the name of the key file, derived from the fingerprint if omitted",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the account",
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "the passphrase protecting the account",
		},
		&cli.UintFlag{
			Name:  "num-addresses",
			Usage: "the number of addresses to derive, defaults to the configured one",
		},
	},
	Action: importWalletAction,
}

func importWalletAction(ctx *cli.Context) error {
	buf, err := hex.DecodeString(ctx.String("seed"))
	if err != nil || len(buf) != len(domain.Hash{}) {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	keyFile := domain.KeyFile{}
	copy(keyFile.Seed[:], buf)
	if fp := ctx.String("fingerprint"); len(fp) > 0 {
		keyFile.Fingerprint = &fp
	}

	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	config := domain.AccountConfig{
		Name:         ctx.String("name"),
		KeyFile:      ctx.String("key-file"),
		NumAddresses: uint32(ctx.Uint("num-addresses")),
	}
	index, err := svc.ImportWallet(ctx.Context, config, keyFile, passphraseFlag(ctx))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Imported account %d\n", index)
	return nil
}
