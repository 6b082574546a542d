package main

import (
	"fmt"

	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var tokenFlag = &cli.StringFlag{
	Name:     "token",
	Usage:    "the address of the token",
	Required: true,
}

var tokens = cli.Command{
	Name:  "tokens",
	Usage: "manage the token whitelist",
	Subcommands: []*cli.Command{
		{
			Name:   "add",
			Usage:  "add a token to the whitelist",
			Flags:  []cli.Flag{tokenFlag},
			Action: addTokenAction,
		},
		{
			Name:   "remove",
			Usage:  "remove a token from the whitelist",
			Flags:  []cli.Flag{tokenFlag},
			Action: remTokenAction,
		},
	},
}

func addTokenAction(ctx *cli.Context) error {
	token, err := hdwallet.ParseAddress(ctx.String("token"))
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.AddToken(ctx.Context, token); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Token %s added\n", token)
	return nil
}

func remTokenAction(ctx *cli.Context) error {
	token, err := hdwallet.ParseAddress(ctx.String("token"))
	if err != nil {
		return err
	}

	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.RemToken(ctx.Context, token); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Token %s removed\n", token)
	return nil
}
