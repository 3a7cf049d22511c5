package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/mExOms/planroute/pkg/planner"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "./configs/planroute.yaml", "path to the planroute YAML config")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	run, err := loadRunConfig(*configPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	requestID := uuid.NewString()
	logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"target":     run.Target,
		"orders":     run.Book.Len(),
	}).Info("starting execution-plan search")

	out, err := planner.FindBestPlans(run.Book, run.Target, run.Search)
	if err != nil {
		logger.WithField("request_id", requestID).Fatalf("search failed: %v", err)
	}

	logGuardReport(logger, requestID, out.Guards)
	printPlans(out, requestID)

	if len(out.Plans) == 0 {
		os.Exit(1)
	}
}
