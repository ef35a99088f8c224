package main

import "taskmate/cmd/tm/root"

func main() {
	root.Execute()
}
