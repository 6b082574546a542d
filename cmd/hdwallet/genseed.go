package main

import (
	"fmt"
	"strings"

	hdwallet "github.com/tdex-network/hdwallet/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a mnemonic seed",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	mnemonic, err := hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(strings.Join(mnemonic, " "))
	return nil
}
