package main

import (
	"github.com/dgruano/ShareYourCloning-backend/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
