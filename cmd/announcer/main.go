package main

import (
	"boscoin.io/announcer/cmd/announcer/cmd"
)

func main() {
	cmd.Execute()
}
