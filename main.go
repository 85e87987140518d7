package main

import "github.com/sawruhv/Less-Stress-More-Regress/cmd"

func main() {
	cmd.Execute()
}
