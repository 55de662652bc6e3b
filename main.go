package main

import "github.com/mouse-blink/pedant/cmd"

func main() {
	cmd.Execute()
}
