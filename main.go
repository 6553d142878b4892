package main

import "ovh-ddns/cmd"

func main() {
	cmd.Execute()
}
