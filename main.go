package main

import "github.com/jaminalder/tictactoe-ai/cmd"

func main() {
    cmd.Execute()
}
