package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var listaccounts = cli.Command{
	Name:   "accounts",
	Usage:  "list the loaded accounts",
	Action: listAccountsAction,
}

var listaddresses = cli.Command{
	Name:  "addresses",
	Usage: "list the addresses of one or every account",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "account",
			Usage: "the slot of the account, all if negative",
			Value: -1,
		},
	},
	Action: listAddressesAction,
}

var showmnemonic = cli.Command{
	Name:   "mnemonic",
	Usage:  "print the mnemonic seed of an account",
	Flags:  []cli.Flag{accountFlag},
	Action: showMnemonicAction,
}

var removeaccount = cli.Command{
	Name:   "remove",
	Usage:  "remove a created account, its key file is kept",
	Flags:  []cli.Flag{accountFlag},
	Action: removeAccountAction,
}

var setaddresscount = cli.Command{
	Name:  "set-address-count",
	Usage: "change the number of addresses of an account",
	Flags: []cli.Flag{
		accountFlag,
		&cli.UintFlag{
			Name:     "count",
			Usage:    "the new number of addresses",
			Required: true,
		},
	},
	Action: setAddressCountAction,
}

func listAccountsAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := svc.GetAllAccounts(ctx.Context)
	if err != nil {
		return err
	}

	printJSON(accounts)
	return nil
}

func listAddressesAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addresses, err := svc.GetAllAddresses(ctx.Context, ctx.Int("account"))
	if err != nil {
		return err
	}

	printJSON(addresses)
	return nil
}

func showMnemonicAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	mnemonic, err := svc.GetMnemonicSeed(ctx.Context, uint32(ctx.Uint("account")))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(strings.Join(mnemonic, " "))
	return nil
}

func removeAccountAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.RemoveAccount(ctx.Context, uint32(ctx.Uint("account"))); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account removed")
	return nil
}

func setAddressCountAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.SetAddressCount(
		ctx.Context, uint32(ctx.Uint("account")), uint32(ctx.Uint("count")),
	); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Address count updated")
	return nil
}
