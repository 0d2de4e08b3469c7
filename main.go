package main

import "github.com/hollowaydev/talkulator/cmd"

func main() {
	cmd.Execute()
}
