package main

import (
	"fmt"
	"os"

	"hackblog/service"
)

const errExitCode = 1

func main() {
	if err := service.NewRootCmd().Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(errExitCode)
	}
}
