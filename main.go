package main

import "minishop/internal/cmd"

func main() {
	cmd.Execute()
}
