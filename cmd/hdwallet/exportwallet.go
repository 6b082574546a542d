package main

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"
)

var accountFlag = &cli.UintFlag{
	Name:     "account",
	Usage:    "the slot of the account",
	Required: true,
}

var exportwallet = cli.Command{
	Name:   "export",
	Usage:  "print the key file of an account",
	Flags:  []cli.Flag{accountFlag},
	Action: exportWalletAction,
}

func exportWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	keyFile, err := svc.ExportWallet(ctx.Context, uint32(ctx.Uint("account")))
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"seed":        hex.EncodeToString(keyFile.Seed[:]),
		"fingerprint": keyFile.Fingerprint,
	})
	return nil
}
