package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jobwell/jobtrack/tests/helpers"
	"github.com/joho/godotenv"
)

const usage = `
Start the jobtrack container stack (mariadb, authorizer, jobtrack) and keep it
running until interrupted. Intended for local development against a full stack.

Usage:

  testcontainers [-h] [-f ENV_FILE_PATH]

  ENV_FILE_PATH: path to a .env file with the stack environment variables

Example:

  testcontainers -f deploy/test.env
`

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	if showHelp {
		fmt.Print(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	// Start in the background so an interrupt during a slow image build still
	// tears down whatever came up.
	var stack *helpers.TestContainers
	go func() {
		var err error
		stack, err = helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v", err)
		}
	}()

	sig := <-sigs
	log.Printf("Received signal: %v, terminating test containers...", sig)
	if stack != nil {
		stack.Terminate(nil)
	}
}
