package main

import "wordlebot/internal/cli"

func main() {
	cli.Execute()
}
