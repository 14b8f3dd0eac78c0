package main

import (
	"os"

	"github.com/denizbek-commits/stat-arb-preferreds/api"
	"github.com/denizbek-commits/stat-arb-preferreds/cmd"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"go.uber.org/zap"
)

func main() {
	log := zap.S()
	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	cfg, err := util.LoadConfig(util.DefaultConfigPath())
	if err != nil {
		log.Fatal(err)
	}
	handler, err := cmd.InitializeDependencies(*cfg, false)
	if err != nil {
		log.Fatal(err)
	}

	apiHandler := api.ApiHandler{
		PairScanHandler: *handler,
	}
	if err := apiHandler.StartApi(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
