package millionaires_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nspcc-dev/millionaires-contract/rpc/millionaires"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Find out who is the richest participant registered in the deployed
// Millionaires contract.
func ExampleContractReader_ComputeRichest() {
	const (
		rpcEndpoint  = "http://localhost:30333"
		contractHash = "0123456789abcdef0123456789abcdef01234567"
	)

	c, err := rpcclient.New(context.Background(), rpcEndpoint, rpcclient.Options{})
	if err != nil {
		log.Fatal(err)
	}

	err = c.Init()
	if err != nil {
		log.Fatal(err)
	}

	hash, err := util.Uint160DecodeStringLE(contractHash)
	if err != nil {
		log.Fatal(err)
	}

	reader := millionaires.NewReader(invoker.New(c, nil), hash)

	addr, err := reader.ComputeRichest()
	if err = millionaires.ClassifyError(err); err != nil {
		if errors.Is(err, millionaires.ErrNotFound) {
			fmt.Println("nobody registered yet")
			return
		}

		log.Fatal(err)
	}

	fmt.Println(addr)
}
