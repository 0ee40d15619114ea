package main

import "github.com/vietddude/wsprobe/internal/cli"

func main() {
	cli.Execute()
}
