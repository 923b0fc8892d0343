package main

import "yamdb/cmd/api-server/command"

func main() {
	command.Execute()
}
