package main

import cmd "github.com/rohmanhakim/amp-sanitizer/internal/cli"

func main() {
	cmd.Execute()
}
