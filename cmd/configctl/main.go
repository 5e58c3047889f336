// Command configctl runs administrative tasks against the payment config
// database and issues credentials for the API.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("configctl failed")
		os.Exit(1)
	}
}
