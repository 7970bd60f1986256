package main

import (
	"fmt"
	"os"
	"time"

	logger "github.com/sirupsen/logrus"

	"tracepage/src/server"
)

var APP_NAME = os.Getenv("APP_NAME")

func main() {
	defer handlePanic()

	if err := server.Run(); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		logger.WithError(fmt.Errorf("%+v", r)).Error(fmt.Sprintf("Application %s panic", APP_NAME))
	}
	//nolint
	time.Sleep(time.Second * 5)
}
