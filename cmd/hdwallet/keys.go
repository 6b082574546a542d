package main

import (
	"encoding/hex"

	"github.com/urfave/cli/v2"
)

var farmerkeys = cli.Command{
	Name:  "keys",
	Usage: "print the farmer public keys of one or every account",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "account",
			Usage: "the slot of the account, all if negative",
			Value: -1,
		},
	},
	Action: farmerKeysAction,
}

func farmerKeysAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	pubkeys := make([]string, 0)
	if index := ctx.Int("account"); index >= 0 {
		key, err := svc.GetFarmerKeys(ctx.Context, uint32(index))
		if err != nil {
			return err
		}
		pubkeys = append(pubkeys, hex.EncodeToString(key.PublicKey))
		key.Zero()
	} else {
		keys, err := svc.GetAllFarmerKeys(ctx.Context)
		if err != nil {
			return err
		}
		for _, key := range keys {
			pubkeys = append(pubkeys, hex.EncodeToString(key.PublicKey))
			key.Zero()
		}
	}

	printJSON(pubkeys)
	return nil
}
