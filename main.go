package main

import "github.com/td0m/crm/internal/cli"

func main() {
	cli.Execute()
}
