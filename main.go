package main

import "pentu/internal/cli"

func main() {
    cli.Execute()
}
