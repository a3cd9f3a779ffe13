package main

import "github.com/somechocolate/tableau-embedded-analytics/cmd"

func main() {
	cmd.Execute()
}
