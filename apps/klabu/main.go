package main

import (
	"log"
	"os"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/enrollment"
	"github.com/trezcool/klabu/core/notice"
	"github.com/trezcool/klabu/core/program"
	"github.com/trezcool/klabu/core/session"
	"github.com/trezcool/klabu/core/stats"
	"github.com/trezcool/klabu/httpapi"
	"github.com/trezcool/klabu/services/logger"
	"github.com/trezcool/klabu/storage/local"
)

func main() {
	defer os.Exit(0)

	conf := core.LoadConfig()

	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(log.New(os.Stderr, "", log.LstdFlags), conf)
	} else {
		logger = logsvc.NewLogrusLogger(conf)
	}

	// set up session
	store := localstore.New(conf.StatePath)
	public := httpapi.NewPublicClient(conf, logger)
	holder := session.NewHolder(httpapi.NewAuthenticator(public), store, logger)
	if err := holder.Restore(); err != nil {
		logger.Warn("could not restore session", err)
	}

	// set up services over the protected client
	client := httpapi.NewClient(conf, holder, logger)
	programSvc := program.NewService(httpapi.NewProgramRepository(client), logger)
	gate := enrollment.NewGate(httpapi.NewEnrollmentRepository(client), logger)
	noticeSvc := notice.NewService(httpapi.NewNoticeRepository(client), httpapi.NewProgramRepository(client), logger)
	statsSvc := stats.NewService(httpapi.NewStatsRepository(client), httpapi.NewProgramRepository(client), logger)

	// start CLI
	cli := commandLine{
		holder:   holder,
		programs: programSvc,
		gate:     gate,
		notices:  noticeSvc,
		stats:    statsSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", fmtError(err))
		}
		os.Exit(1)
	}
}
