package main

import "lifecodex/cmd/lc/root"

func main() {
	root.Execute()
}
