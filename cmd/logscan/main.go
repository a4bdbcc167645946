package main

import "github.com/atikulmunna/logscan/internal/cmd"

func main() {
	cmd.Execute()
}
