package main

import (
	"os"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
