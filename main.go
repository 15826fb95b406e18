package main

import "github.com/LucasAust/forecaster/cmd"

func main() {
	cmd.Execute()
}
