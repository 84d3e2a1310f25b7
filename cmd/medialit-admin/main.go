package main

import "medialit/cmd/medialit-admin/command"

func main() {
	command.Execute()
}
