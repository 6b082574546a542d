package main

import (
	"fmt"
	"strings"

	"github.com/tdex-network/hdwallet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var createwallet = cli.Command{
	Name:  "create",
	Usage: "create a new account from a random or given mnemonic seed",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the account",
		},
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "the space separated 24 words mnemonic seed",
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "the optional passphrase protecting the account",
		},
		&cli.UintFlag{
			Name:  "num-addresses",
			Usage: "the number of addresses to derive, defaults to the configured one",
		},
		&cli.UintFlag{
			Name:  "index",
			Usage: "the account index in the seed derivation path",
		},
	},
	Action: createWalletAction,
}

func createWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var mnemonic []string
	if m := ctx.String("mnemonic"); len(m) > 0 {
		mnemonic = strings.Fields(m)
	}
	config := domain.AccountConfig{
		Name:         ctx.String("name"),
		Index:        uint32(ctx.Uint("index")),
		NumAddresses: uint32(ctx.Uint("num-addresses")),
	}

	index, err := svc.CreateWallet(ctx.Context, config, mnemonic, passphraseFlag(ctx))
	if err != nil {
		return err
	}

	account, err := svc.GetAccount(ctx.Context, index)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Created account %d\n", index)
	printJSON(account)
	return nil
}
